package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/controller"
	"github.com/api-sage/fx-transfer/src/internal/adapter/http/models"
	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateServiceStub struct {
	upsertFn       func(ctx context.Context, req models.UpsertQuoteRequest) (commons.Response[models.QuoteResponse], error)
	getCrossRateFn func(ctx context.Context, req models.GetCrossRateRequest) (commons.Response[models.CrossRateResponse], error)
	convertFn      func(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}

func (s rateServiceStub) GetQuotes(context.Context) (commons.Response[[]models.QuoteResponse], error) {
	return commons.SuccessResponse("quotes fetched successfully", []models.QuoteResponse{{Currency: "USD"}}), nil
}

func (s rateServiceStub) UpsertQuote(ctx context.Context, req models.UpsertQuoteRequest) (commons.Response[models.QuoteResponse], error) {
	return s.upsertFn(ctx, req)
}

func (s rateServiceStub) GetCrossRate(ctx context.Context, req models.GetCrossRateRequest) (commons.Response[models.CrossRateResponse], error) {
	return s.getCrossRateFn(ctx, req)
}

func (s rateServiceStub) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	return s.convertFn(ctx, req)
}

type accountServiceStub struct {
	createFn func(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	getFn    func(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
}

func (s accountServiceStub) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	return s.createFn(ctx, req)
}

func (s accountServiceStub) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	return s.getFn(ctx, id)
}

type transferServiceStub struct {
	transferFn func(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	previewFn  func(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

func (s transferServiceStub) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	return s.transferFn(ctx, req)
}

func (s transferServiceStub) Preview(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	return s.previewFn(ctx, req)
}

func serve(t *testing.T, registrar interface {
	RegisterRoutes(*http.ServeMux, func(http.Handler) http.Handler)
}, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	registrar.RegisterRoutes(mux, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestRateControllerCrossRateQuery(t *testing.T) {
	var got models.GetCrossRateRequest
	c := controller.NewRateController(rateServiceStub{
		getCrossRateFn: func(_ context.Context, req models.GetCrossRateRequest) (commons.Response[models.CrossRateResponse], error) {
			got = req
			return commons.SuccessResponse("rate fetched successfully", models.CrossRateResponse{
				Rate: decimal.RequireFromString("2.654878956"),
			}), nil
		},
	})

	rr := serve(t, c, httptest.NewRequest(http.MethodGet, "/rates?from=EUR&to=NOK&kind=bid&precision=6", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.GetCrossRateRequest{FromCurrency: "EUR", ToCurrency: "NOK", Kind: "bid", Precision: "6"}, got)

	var body commons.Response[models.CrossRateResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "2.654878956", body.Data.Rate.String())
}

func TestRateControllerErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		resp   commons.Response[models.ConvertResponse]
		status int
	}{
		{
			name:   "validation",
			err:    errors.New("amount is required"),
			resp:   commons.ValidationErrorResponse[models.ConvertResponse](errors.New("amount is required")),
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown currency",
			err:    fmt.Errorf("%w: XYZ", domain.ErrUnknownCurrency),
			resp:   commons.ErrorResponse[models.ConvertResponse]("Currency not found"),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "division by zero",
			err:    domain.ErrDivisionByZero,
			resp:   commons.ErrorResponse[models.ConvertResponse]("Rate unavailable"),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unexpected",
			err:    errors.New("db down"),
			resp:   commons.ErrorResponse[models.ConvertResponse]("failed to convert amount"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := controller.NewRateController(rateServiceStub{
				convertFn: func(context.Context, models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
					return tt.resp, tt.err
				},
			})

			rr := serve(t, c, httptest.NewRequest(http.MethodGet, "/convert?amount=1&from=EUR&to=XYZ", nil))
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestRateControllerUpsertQuote(t *testing.T) {
	c := controller.NewRateController(rateServiceStub{
		upsertFn: func(_ context.Context, req models.UpsertQuoteRequest) (commons.Response[models.QuoteResponse], error) {
			if err := req.Validate(); err != nil {
				return commons.ValidationErrorResponse[models.QuoteResponse](err), err
			}
			return commons.SuccessResponse("quote saved successfully", models.QuoteResponse{
				Currency: req.Currency,
				Ask:      req.Ask,
				Bid:      req.Bid,
			}), nil
		},
	})

	rr := serve(t, c, httptest.NewRequest(http.MethodPut, "/quotes",
		strings.NewReader(`{"currency":"EUR","ask":"1.25","bid":"1.21"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var body commons.Response[models.QuoteResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "1.25", body.Data.Ask.String())

	rr = serve(t, c, httptest.NewRequest(http.MethodPut, "/quotes",
		strings.NewReader(`{"currency":"EUR","ask":"0","bid":"1.21"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, c, httptest.NewRequest(http.MethodPut, "/quotes", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateControllerRejectsWrongMethod(t *testing.T) {
	c := controller.NewRateController(rateServiceStub{})

	rr := serve(t, c, httptest.NewRequest(http.MethodPost, "/quotes", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestAccountControllerCreateAndGet(t *testing.T) {
	c := controller.NewAccountController(accountServiceStub{
		createFn: func(_ context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
			return commons.SuccessResponse("account created successfully", models.AccountResponse{
				ID:       "A",
				Currency: req.Currency,
				Balance:  req.InitialBalance,
			}), nil
		},
		getFn: func(_ context.Context, id string) (commons.Response[models.AccountResponse], error) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), commons.ErrRecordNotFound
		},
	})

	rr := serve(t, c, httptest.NewRequest(http.MethodPost, "/accounts",
		strings.NewReader(`{"currency":"EUR","initialBalance":"1000.00"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var body commons.Response[models.AccountResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "1000", body.Data.Balance.String())

	rr = serve(t, c, httptest.NewRequest(http.MethodGet, "/accounts?id=missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAccountControllerInvalidBody(t *testing.T) {
	c := controller.NewAccountController(accountServiceStub{})

	rr := serve(t, c, httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTransferControllerRoutes(t *testing.T) {
	var previewed, transferred bool
	c := controller.NewTransferController(transferServiceStub{
		transferFn: func(_ context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
			transferred = true
			return commons.ErrorResponse[models.TransferResponse]("Account changed, retry transfer"), commons.ErrStaleRecord
		},
		previewFn: func(_ context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
			previewed = true
			assert.Equal(t, "203.34", req.Amount.String())
			return commons.SuccessResponse("transfer previewed", models.TransferResponse{}), nil
		},
	})

	payload := `{"sourceAccountId":"A","targetAccountId":"B","amount":"203.34"}`

	rr := serve(t, c, httptest.NewRequest(http.MethodPost, "/transfers/preview", strings.NewReader(payload)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, previewed)
	assert.False(t, transferred)

	rr = serve(t, c, httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(payload)))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.True(t, transferred)

	rr = serve(t, c, httptest.NewRequest(http.MethodGet, "/transfers", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
