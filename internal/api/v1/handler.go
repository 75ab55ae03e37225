package v1

import (
	"context"
	"time"

	"github.com/KALU56/E-Self/internal/api/v1/middleware"
	"github.com/KALU56/E-Self/internal/api/validator"
	"github.com/KALU56/E-Self/internal/config"
	"github.com/KALU56/E-Self/internal/constants"
	"github.com/KALU56/E-Self/internal/metrics"
	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/service"
	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

type Handler struct {
	logger     *zap.Logger
	payments   service.PaymentService
	XValidator validator.IXValidator
	metrics    *metrics.Metrics
	cfg        *config.Config
}

func NewHandler(logger *zap.Logger, payments service.PaymentService, XValidator validator.IXValidator,
	metrics *metrics.Metrics, cfg *config.Config) *Handler {
	return &Handler{
		logger:     logger,
		payments:   payments,
		XValidator: XValidator,
		metrics:    metrics,
		cfg:        cfg,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreatePayment(c *fiber.Ctx) error {
	var request CreatePaymentRequest

	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Invalid payment request", zap.Any("request", request))
		return c.JSON(responseError)
	}

	userID, ok := c.Locals(middleware.UserIDKey).(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    constants.ErrCodeUnauthorized,
			"message": constants.GetErrorMessage(constants.ErrCodeUnauthorized),
		})
	}

	cmd := service.InitiatePaymentCommand{
		UserID:   userID,
		CourseID: request.CourseID,
		Amount:   request.Amount,
	}

	resp, err := h.payments.Initiate(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Failed to initiate payment",
			zap.Error(err),
			zap.Int64("userID", userID),
			zap.Int64("courseID", request.CourseID))
		return err
	}

	if h.metrics != nil {
		h.metrics.RecordPaymentInitiated()
	}

	h.logger.Info("Payment initiation accepted",
		zap.Int64("userID", userID),
		zap.Int64("paymentID", resp.PaymentID),
		zap.String("txRef", resp.TxRef))

	return c.Status(fiber.StatusCreated).JSON(CreatePaymentResponse{
		PaymentID:   resp.PaymentID,
		TxRef:       resp.TxRef,
		CheckoutURL: resp.CheckoutURL,
	})
}

// Webhook handles Chapa's asynchronous push. The signature check is a hard
// precondition: an unsigned or badly signed payload never reaches finalize.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	signature := c.Get("Chapa-Signature")
	if signature == "" {
		signature = c.Get("x-chapa-signature")
	}

	if !chapa.VerifyWebhookSignature(c.Body(), signature, h.cfg.Chapa.WebhookSecret) {
		if h.metrics != nil {
			h.metrics.RecordWebhookSignatureFailure()
		}
		h.logger.Warn("Webhook rejected: invalid signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidSignature,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidSignature),
		})
	}

	var request WebhookRequest
	if err := c.BodyParser(&request); err != nil || request.TxRef == "" {
		h.logger.Warn("Webhook missing transaction reference", zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	ctx, cancel := h.finalizeContext(c)
	defer cancel()

	result, err := h.payments.Finalize(ctx, request.TxRef)
	if err != nil {
		h.logger.Error("Webhook finalize failed",
			zap.Error(err),
			zap.String("txRef", request.TxRef))
		// the error middleware maps GATEWAY_UNAVAILABLE to 503, which is
		// what tells Chapa's retry machinery to deliver again
		return err
	}

	h.recordFinalize(result)

	h.logger.Info("Webhook processed",
		zap.String("txRef", request.TxRef),
		zap.String("status", string(result.Payment.Status)))

	return c.JSON(fiber.Map{"code": "success", "status": string(result.Payment.Status)})
}

func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	request := VerifyPaymentRequest{TxRef: c.Query("tx_ref")}

	if errs := h.XValidator.Validate(request); len(errs) > 0 {
		if h.metrics != nil {
			h.metrics.RecordValidationError("tx_ref", errs[0].Tag)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    constants.ErrCodeValidationFailed,
			"message": constants.GetErrorMessage(constants.ErrCodeValidationFailed),
		})
	}

	ctx, cancel := h.finalizeContext(c)
	defer cancel()

	result, err := h.payments.Finalize(ctx, request.TxRef)
	if err != nil {
		h.logger.Error("Verify finalize failed",
			zap.Error(err),
			zap.String("txRef", request.TxRef))
		return err
	}

	h.recordFinalize(result)

	return c.JSON(toPaymentResponse(result.Payment, result.Enrollment))
}

func (h *Handler) GetHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    constants.ErrCodeUnauthorized,
			"message": constants.GetErrorMessage(constants.ErrCodeUnauthorized),
		})
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	offset := c.QueryInt("offset", 0)

	payments, total, err := h.payments.GetHistory(service.GetHistoryQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("Failed to load payment history",
			zap.Error(err),
			zap.Int64("userID", userID))
		return err
	}

	response := GetHistoryResponse{Payments: make([]PaymentResponse, 0, len(payments)), Total: total}
	for i := range payments {
		response.Payments = append(response.Payments, toPaymentResponse(&payments[i], payments[i].Enrollment))
	}

	return c.JSON(response)
}

// finalizeContext bounds the whole finalize leg, including the gateway
// verify call, independently of the HTTP client's own timeout.
func (h *Handler) finalizeContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	timeout := h.cfg.Chapa.VerifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

func (h *Handler) recordFinalize(result service.FinalizeResult) {
	if h.metrics == nil || result.Payment == nil {
		return
	}

	h.metrics.RecordPaymentFinalized(string(result.Payment.Status))

	if result.AlreadySettled {
		h.metrics.RecordDuplicateFinalize()
		return
	}

	if result.Enrollment != nil {
		h.metrics.RecordEnrollmentGranted()
	}
}

func toPaymentResponse(payment *model.Payment, enrollment *model.Enrollment) PaymentResponse {
	response := PaymentResponse{
		PaymentID: payment.ID,
		TxRef:     payment.TxRef,
		CourseID:  payment.CourseID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt.Format(time.RFC3339),
	}

	if payment.ReceiptURL != nil {
		response.ReceiptURL = *payment.ReceiptURL
	}

	if payment.Course.ID != 0 {
		response.Course = &CourseResponse{
			ID:    payment.Course.ID,
			Title: payment.Course.Title,
			Price: payment.Course.Price,
		}
	}

	if enrollment != nil {
		response.Enrollment = &EnrollmentResponse{
			ID:       enrollment.ID,
			Status:   string(enrollment.Status),
			Progress: enrollment.Progress,
		}
	}

	return response
}
