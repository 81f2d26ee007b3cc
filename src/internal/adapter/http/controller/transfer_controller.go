package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/usecase/service_interfaces"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	for path, h := range map[string]http.HandlerFunc{
		"/transfers":         c.handle(c.service.Transfer),
		"/transfers/preview": c.handle(c.service.Preview),
	} {
		var handler http.Handler = h
		if authMiddleware != nil {
			handler = authMiddleware(handler)
		}
		mux.Handle(path, handler)
	}
}

type transferFunc func(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)

func (c *TransferController) handle(run transferFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if r.Method != http.MethodPost {
			logRequest(r, nil)
			methodNotAllowed[models.TransferResponse](w, r, start)
			return
		}

		var req models.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logError(r, err, nil)
			response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		logRequest(r, req)

		response, err := run(r.Context(), req)
		if err != nil {
			logError(r, err, logger.Fields{"message": response.Message})
			status := errorStatus(response.IsValidationFailure(), err)
			writeJSON(w, status, response)
			logResponse(r, status, response, start)
			return
		}

		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
	}
}
