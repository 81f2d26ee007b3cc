package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/usecase/service_interfaces"
)

type RateController struct {
	service service_interfaces.RateService
}

func NewRateController(service service_interfaces.RateService) *RateController {
	return &RateController{service: service}
}

func (c *RateController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	for path, h := range map[string]http.HandlerFunc{
		"/quotes":  c.quotes,
		"/rates":   c.getCrossRate,
		"/convert": c.convert,
	} {
		var handler http.Handler = h
		if authMiddleware != nil {
			handler = authMiddleware(handler)
		}
		mux.Handle(path, handler)
	}
}

func (c *RateController) quotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.getQuotes(w, r)
	case http.MethodPut:
		c.upsertQuote(w, r)
	default:
		logRequest(r, nil)
		methodNotAllowed[[]models.QuoteResponse](w, r, time.Now())
	}
}

func (c *RateController) upsertQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpsertQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.QuoteResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpsertQuote(r.Context(), req)
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

func (c *RateController) getQuotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetQuotes(r.Context())
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

func (c *RateController) getCrossRate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		logRequest(r, nil)
		methodNotAllowed[models.CrossRateResponse](w, r, start)
		return
	}

	query := r.URL.Query()
	req := models.GetCrossRateRequest{
		FromCurrency: query.Get("from"),
		ToCurrency:   query.Get("to"),
		Kind:         query.Get("kind"),
		Precision:    query.Get("precision"),
	}
	logRequest(r, req)

	response, err := c.service.GetCrossRate(r.Context(), req)
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

func (c *RateController) convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		logRequest(r, nil)
		methodNotAllowed[models.ConvertResponse](w, r, start)
		return
	}

	query := r.URL.Query()
	req := models.ConvertRequest{
		Amount:       query.Get("amount"),
		FromCurrency: query.Get("from"),
		ToCurrency:   query.Get("to"),
	}
	logRequest(r, req)

	response, err := c.service.Convert(r.Context(), req)
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
