package transport

import (
	"errors"
	"net/http"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kie"
	"github.com/ferixdi/kie-studio/internal/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	tasks  service.TaskService
	wallet service.WalletService
}

func NewHandler(tasks service.TaskService, wallet service.WalletService) *Handler {
	return &Handler{tasks: tasks, wallet: wallet}
}

// respondError переводит ошибку домена в HTTP-статус. Сообщения ошибок
// валидации и кошелька показываются пользователю как есть.
func respondError(c *gin.Context, err error) {
	var validationErr *entity.ValidationError
	var apiErr *kie.APIError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.Is(err, entity.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrCredentialMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrPromoUnknown), errors.Is(err, entity.ErrPromoUsed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrHistoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Msg, "code": apiErr.Code})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
