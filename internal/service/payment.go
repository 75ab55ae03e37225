package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KALU56/E-Self/internal/config"
	"github.com/KALU56/E-Self/internal/constants"
	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/repository"
	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	Initiate(ctx context.Context, cmd InitiatePaymentCommand) (InitiatePaymentResponse, error)
	Finalize(ctx context.Context, txRef string) (FinalizeResult, error)
	GetHistory(query GetHistoryQuery) ([]model.Payment, int, error)
}

type Payment struct {
	paymentRepo repository.PaymentRepository
	eventRepo   repository.PaymentEventRepository
	courseRepo  repository.CourseRepository
	userRepo    repository.UserRepository
	txManager   repository.TxManager
	enrollment  EnrollmentService
	gateway     chapa.Gateway
	cfg         *config.Config
	logger      *zap.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, eventRepo repository.PaymentEventRepository,
	courseRepo repository.CourseRepository, userRepo repository.UserRepository, txManager repository.TxManager,
	enrollment EnrollmentService, gateway chapa.Gateway, cfg *config.Config, logger *zap.Logger) PaymentService {
	return &Payment{
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		enrollment:  enrollment,
		gateway:     gateway,
		cfg:         cfg,
		logger:      logger,
	}
}

func (p *Payment) Initiate(ctx context.Context, cmd InitiatePaymentCommand) (InitiatePaymentResponse, error) {
	if cmd.Amount <= 0 {
		return InitiatePaymentResponse{}, NewServiceError(constants.ErrCodeValidationFailed,
			errors.New("amount must be greater than zero"))
	}

	course, err := p.courseRepo.GetByID(cmd.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return InitiatePaymentResponse{}, NewServiceError(constants.ErrCodeCourseNotFound, err)
		}

		return InitiatePaymentResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	// Upstream may present discounted prices, so a mismatch is audited, not
	// rejected. Rejecting would be a caller policy decision.
	if cmd.Amount != course.Price {
		p.logger.Warn("Payment amount does not match course price",
			zap.Int64("courseID", course.ID),
			zap.Int64("amount", cmd.Amount),
			zap.Int64("coursePrice", course.Price))
	}

	user, err := p.userRepo.GetByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return InitiatePaymentResponse{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}

		return InitiatePaymentResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	payment := model.Payment{
		TxRef:     newTxRef(),
		UserID:    user.ID,
		CourseID:  course.ID,
		Amount:    cmd.Amount,
		Currency:  p.cfg.Payments.Currency,
		Method:    model.PaymentMethodChapa,
		Status:    model.PaymentStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := p.paymentRepo.Create(ctx, &payment); err != nil {
		p.logger.Error("Failed to create payment record",
			zap.Error(err),
			zap.Int64("userID", user.ID),
			zap.Int64("courseID", course.ID))
		return InitiatePaymentResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	firstName, lastName := splitName(user.Name)

	request := chapa.InitializeRequest{
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Email:       user.Email,
		FirstName:   firstName,
		LastName:    lastName,
		TxRef:       payment.TxRef,
		CallbackURL: p.cfg.API.BaseURL + "/payment/verify?tx_ref=" + payment.TxRef,
		ReturnURL:   p.cfg.API.FrontendURL + "/payment/success",
		Title:       "Payment for " + course.Title,
		Description: "Course enrollment payment",
	}

	initResp, err := p.gateway.Initialize(ctx, request)
	if err != nil {
		// a fresh PENDING row with no checkout URL can never resolve, so
		// the failed initialization is recorded before surfacing the error
		if _, failErr := p.paymentRepo.FailFromPending(ctx, payment.TxRef); failErr != nil {
			p.logger.Error("Failed to mark payment FAILED after initialize error",
				zap.Error(failErr),
				zap.String("txRef", payment.TxRef))
		}

		if errors.Is(err, chapa.ErrRejected) {
			p.logger.Error("Gateway rejected payment initialization",
				zap.Error(err),
				zap.String("txRef", payment.TxRef))
			return InitiatePaymentResponse{}, NewServiceError(constants.ErrCodeGatewayRejected, err)
		}

		p.logger.Error("Gateway unavailable during payment initialization",
			zap.Error(err),
			zap.String("txRef", payment.TxRef))
		return InitiatePaymentResponse{}, NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	p.logger.Info("Payment initiated",
		zap.Int64("paymentID", payment.ID),
		zap.String("txRef", payment.TxRef),
		zap.Int64("userID", user.ID),
		zap.Int64("courseID", course.ID),
		zap.Int64("amount", payment.Amount))

	return InitiatePaymentResponse{
		PaymentID:   payment.ID,
		TxRef:       payment.TxRef,
		CheckoutURL: initResp.CheckoutURL,
	}, nil
}

// Finalize reconciles a payment against the gateway's verification result.
// It is safe to call any number of times, concurrently, from the webhook and
// the verify path: the PENDING->terminal CAS picks a single winner, and only
// the winner grants the enrollment.
func (p *Payment) Finalize(ctx context.Context, txRef string) (FinalizeResult, error) {
	payment, err := p.paymentRepo.GetByTxRef(txRef)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			p.logger.Warn("Finalize called for unknown transaction", zap.String("txRef", txRef))
			return FinalizeResult{}, NewServiceError(constants.ErrCodePaymentNotFound, err)
		}

		return FinalizeResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if payment.Terminal() {
		p.logger.Info("Finalize on terminal payment, returning stored result",
			zap.String("txRef", txRef),
			zap.String("status", string(payment.Status)))
		return FinalizeResult{Payment: payment, Enrollment: payment.Enrollment, AlreadySettled: true}, nil
	}

	verification, err := p.gateway.Verify(ctx, txRef)
	if err != nil {
		if errors.Is(err, chapa.ErrRejected) {
			p.logger.Error("Gateway rejected verification request",
				zap.Error(err),
				zap.String("txRef", txRef))
			return FinalizeResult{}, NewServiceError(constants.ErrCodeGatewayRejected, err)
		}

		// leave the payment PENDING so a later retry can still resolve it
		p.logger.Warn("Gateway unavailable during verification",
			zap.Error(err),
			zap.String("txRef", txRef))
		return FinalizeResult{}, NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	switch verification.Status {
	case chapa.TransactionPending:
		p.logger.Info("Gateway still reports pending", zap.String("txRef", txRef))
		return FinalizeResult{Payment: payment}, nil

	case chapa.TransactionFailed:
		return p.finalizeFailed(ctx, payment)

	case chapa.TransactionSuccess:
		return p.finalizeCompleted(ctx, payment, verification)

	default:
		return FinalizeResult{}, NewServiceError(constants.ErrCodeInternalError, ErrUnknownStatus)
	}
}

func (p *Payment) finalizeFailed(ctx context.Context, payment *model.Payment) (FinalizeResult, error) {
	applied, err := p.paymentRepo.FailFromPending(ctx, payment.TxRef)
	if err != nil {
		return FinalizeResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if !applied {
		// a concurrent finalize already settled this payment
		return p.reload(payment.TxRef)
	}

	p.logger.Info("Payment failed after gateway verification",
		zap.Int64("paymentID", payment.ID),
		zap.String("txRef", payment.TxRef))

	payment.Status = model.PaymentStatusFailed
	return FinalizeResult{Payment: payment}, nil
}

func (p *Payment) finalizeCompleted(ctx context.Context, payment *model.Payment,
	verification chapa.VerifyResponse) (FinalizeResult, error) {

	var receiptURL *string
	if verification.ReceiptURL != "" {
		receiptURL = &verification.ReceiptURL
	}

	applied, err := p.paymentRepo.CompleteFromPending(ctx, payment.TxRef, receiptURL)
	if err != nil {
		return FinalizeResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if !applied {
		// lost the CAS: the winner grants, this caller echoes the result
		p.logger.Info("Concurrent finalize won, skipping enrollment grant",
			zap.String("txRef", payment.TxRef))
		return p.reload(payment.TxRef)
	}

	enrolled, err := p.enrollment.GrantOnce(ctx, payment.UserID, payment.CourseID)
	if err != nil {
		p.logger.Error("Payment completed but enrollment grant failed",
			zap.Error(err),
			zap.Int64("paymentID", payment.ID),
			zap.String("txRef", payment.TxRef))

		// TODO: sweep COMPLETED payments without enrollment_id for re-grant
		return FinalizeResult{}, err
	}

	event := model.PaymentEvent{
		PaymentID:    payment.ID,
		TxRef:        payment.TxRef,
		EnrollmentID: enrolled.ID,
		Type:         model.EventTypePaymentCompleted,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err = p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.paymentRepo.LinkEnrollment(ctx, payment.ID, enrolled.ID); err != nil {
			return err
		}

		return p.eventRepo.Create(ctx, &event)
	})
	if err != nil {
		p.logger.Error("Failed to link enrollment to payment",
			zap.Error(err),
			zap.Int64("paymentID", payment.ID),
			zap.Int64("enrollmentID", enrolled.ID))
		return FinalizeResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	p.logger.Info("Payment completed and enrollment granted",
		zap.Int64("paymentID", payment.ID),
		zap.String("txRef", payment.TxRef),
		zap.Int64("enrollmentID", enrolled.ID))

	payment.Status = model.PaymentStatusCompleted
	payment.ReceiptURL = receiptURL
	payment.EnrollmentID = &enrolled.ID
	payment.Enrollment = enrolled

	return FinalizeResult{Payment: payment, Enrollment: enrolled}, nil
}

func (p *Payment) reload(txRef string) (FinalizeResult, error) {
	payment, err := p.paymentRepo.GetByTxRef(txRef)
	if err != nil {
		return FinalizeResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	return FinalizeResult{Payment: payment, Enrollment: payment.Enrollment, AlreadySettled: true}, nil
}

func (p *Payment) GetHistory(query GetHistoryQuery) ([]model.Payment, int, error) {
	payments, err := p.paymentRepo.GetByUserID(query.UserID, query.Limit, query.Offset)
	if err != nil {
		return nil, 0, NewServiceError(ErrCodeDatabase, err)
	}

	total, err := p.paymentRepo.CountByUserID(query.UserID)
	if err != nil {
		return nil, 0, NewServiceError(ErrCodeDatabase, err)
	}

	return payments, total, nil
}

// newTxRef builds a reference that is unique across retries and restarts.
// References are never reused, even after a FAILED attempt.
func newTxRef() string {
	return fmt.Sprintf("chapa-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first, last := "User", "Customer"
	if len(parts) > 0 && parts[0] != "" {
		first = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		last = parts[1]
	}
	return first, last
}
