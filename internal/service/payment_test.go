package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KALU56/E-Self/internal/config"
	"github.com/KALU56/E-Self/internal/constants"
	"github.com/KALU56/E-Self/internal/mocks"
	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/repository"
	"github.com/KALU56/E-Self/internal/service"
	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentMocks struct {
	paymentRepo *mocks.PaymentRepository
	eventRepo   *mocks.PaymentEventRepository
	courseRepo  *mocks.CourseRepository
	userRepo    *mocks.UserRepository
	txManager   *mocks.TxManager
	enrollment  *mocks.EnrollmentService
	gateway     *mocks.ChapaGateway
}

func newPaymentService(t *testing.T) (service.PaymentService, *paymentMocks) {
	t.Helper()

	m := &paymentMocks{
		paymentRepo: &mocks.PaymentRepository{},
		eventRepo:   &mocks.PaymentEventRepository{},
		courseRepo:  &mocks.CourseRepository{},
		userRepo:    &mocks.UserRepository{},
		txManager:   &mocks.TxManager{},
		enrollment:  &mocks.EnrollmentService{},
		gateway:     &mocks.ChapaGateway{},
	}

	cfg := &config.Config{
		API:      config.API{BaseURL: "https://api.eself.test", FrontendURL: "https://eself.test"},
		Payments: config.Payments{Currency: "ETB"},
	}

	svc := service.NewPaymentService(m.paymentRepo, m.eventRepo, m.courseRepo, m.userRepo,
		m.txManager, m.enrollment, m.gateway, cfg, zap.NewNop())

	return svc, m
}

func TestPayment_Initiate(t *testing.T) {
	course := &model.Course{ID: 7, Title: "Programming Basics", Price: 10000, Currency: "ETB"}
	user := &model.User{ID: 42, Email: "abel@example.com", Name: "Abel Tesfaye"}

	cmd := service.InitiatePaymentCommand{UserID: 42, CourseID: 7, Amount: 10000}

	t.Run("successful initiation returns checkout url and pending payment", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return(user, nil)

		m.paymentRepo.On("Create", context.Background(), mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.PaymentStatusPending &&
				p.Amount == 10000 &&
				p.UserID == 42 &&
				p.CourseID == 7 &&
				strings.HasPrefix(p.TxRef, "chapa-")
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Payment).ID = 101
		}).Return(nil)

		m.gateway.On("Initialize", context.Background(), mock.MatchedBy(func(req chapa.InitializeRequest) bool {
			return req.Amount == 10000 &&
				req.Email == "abel@example.com" &&
				req.FirstName == "Abel" &&
				req.LastName == "Tesfaye" &&
				req.Title == "Payment for Programming Basics" &&
				strings.Contains(req.CallbackURL, "tx_ref=")
		})).Return(chapa.InitializeResponse{CheckoutURL: "https://checkout.chapa.co/c/abc"}, nil)

		resp, err := svc.Initiate(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(101), resp.PaymentID)
		assert.Equal(t, "https://checkout.chapa.co/c/abc", resp.CheckoutURL)
		assert.True(t, strings.HasPrefix(resp.TxRef, "chapa-"))
		m.paymentRepo.AssertExpectations(t)
		m.gateway.AssertExpectations(t)
	})

	t.Run("tx refs are never reused across initiations", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return(user, nil)
		m.paymentRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		m.gateway.On("Initialize", context.Background(), mock.Anything).
			Return(chapa.InitializeResponse{CheckoutURL: "https://checkout.chapa.co/c/x"}, nil)

		first, err := svc.Initiate(context.Background(), cmd)
		require.NoError(t, err)

		second, err := svc.Initiate(context.Background(), cmd)
		require.NoError(t, err)

		assert.NotEqual(t, first.TxRef, second.TxRef)
	})

	t.Run("non-positive amount rejected before any external call", func(t *testing.T) {
		svc, m := newPaymentService(t)

		_, err := svc.Initiate(context.Background(), service.InitiatePaymentCommand{UserID: 42, CourseID: 7, Amount: 0})

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeValidationFailed, serviceErr.Code)
		m.courseRepo.AssertNotCalled(t, "GetByID", mock.Anything)
		m.gateway.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
	})

	t.Run("unknown course", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return((*model.Course)(nil), repository.ErrCourseNotFound)

		_, err := svc.Initiate(context.Background(), cmd)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeCourseNotFound, serviceErr.Code)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return((*model.User)(nil), repository.ErrUserNotFound)

		_, err := svc.Initiate(context.Background(), cmd)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUserNotFound, serviceErr.Code)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("amount differing from course price is accepted", func(t *testing.T) {
		svc, m := newPaymentService(t)

		discounted := service.InitiatePaymentCommand{UserID: 42, CourseID: 7, Amount: 7500}

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return(user, nil)
		m.paymentRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		m.gateway.On("Initialize", context.Background(), mock.MatchedBy(func(req chapa.InitializeRequest) bool {
			return req.Amount == 7500
		})).Return(chapa.InitializeResponse{CheckoutURL: "https://checkout.chapa.co/c/d"}, nil)

		_, err := svc.Initiate(context.Background(), discounted)

		require.NoError(t, err)
		m.gateway.AssertExpectations(t)
	})

	t.Run("gateway unavailable marks payment failed and surfaces error", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return(user, nil)
		m.paymentRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		m.gateway.On("Initialize", context.Background(), mock.Anything).
			Return(chapa.InitializeResponse{}, chapa.ErrUnavailable)
		m.paymentRepo.On("FailFromPending", context.Background(), mock.AnythingOfType("string")).Return(true, nil)

		resp, err := svc.Initiate(context.Background(), cmd)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeGatewayUnavailable, serviceErr.Code)
		assert.Empty(t, resp.CheckoutURL)
		m.paymentRepo.AssertCalled(t, "FailFromPending", context.Background(), mock.AnythingOfType("string"))
	})

	t.Run("gateway rejection marks payment failed", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.courseRepo.On("GetByID", int64(7)).Return(course, nil)
		m.userRepo.On("GetByID", int64(42)).Return(user, nil)
		m.paymentRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		m.gateway.On("Initialize", context.Background(), mock.Anything).
			Return(chapa.InitializeResponse{}, chapa.ErrRejected)
		m.paymentRepo.On("FailFromPending", context.Background(), mock.AnythingOfType("string")).Return(true, nil)

		_, err := svc.Initiate(context.Background(), cmd)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeGatewayRejected, serviceErr.Code)
	})
}

func pendingPayment() *model.Payment {
	return &model.Payment{
		ID:        101,
		TxRef:     "chapa-1700000000-ab12cd34",
		UserID:    42,
		CourseID:  7,
		Amount:    10000,
		Currency:  "ETB",
		Method:    model.PaymentMethodChapa,
		Status:    model.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestPayment_Finalize(t *testing.T) {
	txRef := "chapa-1700000000-ab12cd34"

	t.Run("unknown transaction is not found and never created", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByTxRef", txRef).Return((*model.Payment)(nil), repository.ErrPaymentNotFound)

		_, err := svc.Finalize(context.Background(), txRef)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodePaymentNotFound, serviceErr.Code)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("terminal payment short-circuits without gateway call", func(t *testing.T) {
		svc, m := newPaymentService(t)

		enrollmentID := int64(55)
		completed := pendingPayment()
		completed.Status = model.PaymentStatusCompleted
		completed.EnrollmentID = &enrollmentID
		completed.Enrollment = &model.Enrollment{ID: 55, StudentID: 42, CourseID: 7, Status: model.EnrollmentStatusActive}

		m.paymentRepo.On("GetByTxRef", txRef).Return(completed, nil)

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, result.Payment.Status)
		assert.Equal(t, int64(55), result.Enrollment.ID)
		assert.True(t, result.AlreadySettled)
		m.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		m.enrollment.AssertNotCalled(t, "GrantOnce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway unavailable leaves payment pending", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil)
		m.gateway.On("Verify", context.Background(), txRef).Return(chapa.VerifyResponse{}, chapa.ErrUnavailable)

		_, err := svc.Finalize(context.Background(), txRef)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeGatewayUnavailable, serviceErr.Code)
		m.paymentRepo.AssertNotCalled(t, "CompleteFromPending", mock.Anything, mock.Anything, mock.Anything)
		m.paymentRepo.AssertNotCalled(t, "FailFromPending", mock.Anything, mock.Anything)
	})

	t.Run("pending verification result does not mutate status", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil)
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionPending}, nil)

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPending, result.Payment.Status)
		assert.Nil(t, result.Enrollment)
		m.paymentRepo.AssertNotCalled(t, "CompleteFromPending", mock.Anything, mock.Anything, mock.Anything)
		m.paymentRepo.AssertNotCalled(t, "FailFromPending", mock.Anything, mock.Anything)
	})

	t.Run("failed verification transitions payment to failed", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil)
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionFailed}, nil)
		m.paymentRepo.On("FailFromPending", context.Background(), txRef).Return(true, nil)

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Payment.Status)
		assert.Nil(t, result.Enrollment)
		m.enrollment.AssertNotCalled(t, "GrantOnce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("successful verification grants enrollment exactly once", func(t *testing.T) {
		svc, m := newPaymentService(t)

		receiptURL := "https://chapa.co/receipt/abc"
		enrolled := &model.Enrollment{ID: 55, StudentID: 42, CourseID: 7, Status: model.EnrollmentStatusActive}

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil)
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionSuccess, ReceiptURL: receiptURL}, nil)
		m.paymentRepo.On("CompleteFromPending", context.Background(), txRef, mock.MatchedBy(func(url *string) bool {
			return url != nil && *url == receiptURL
		})).Return(true, nil)
		m.enrollment.On("GrantOnce", context.Background(), int64(42), int64(7)).Return(enrolled, nil)
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.paymentRepo.On("LinkEnrollment", mock.Anything, int64(101), int64(55)).Return(nil)
		m.eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(event *model.PaymentEvent) bool {
			return event.Type == model.EventTypePaymentCompleted &&
				event.PaymentID == 101 &&
				event.EnrollmentID == 55
		})).Return(nil)

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, result.Payment.Status)
		assert.Equal(t, int64(55), result.Enrollment.ID)
		require.NotNil(t, result.Payment.ReceiptURL)
		assert.Equal(t, receiptURL, *result.Payment.ReceiptURL)
		m.enrollment.AssertNumberOfCalls(t, "GrantOnce", 1)
		m.eventRepo.AssertExpectations(t)
	})

	t.Run("losing the completion race skips the grant", func(t *testing.T) {
		svc, m := newPaymentService(t)

		enrollmentID := int64(55)
		settled := pendingPayment()
		settled.Status = model.PaymentStatusCompleted
		settled.EnrollmentID = &enrollmentID
		settled.Enrollment = &model.Enrollment{ID: 55, StudentID: 42, CourseID: 7}

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil).Once()
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionSuccess}, nil)
		m.paymentRepo.On("CompleteFromPending", context.Background(), txRef, (*string)(nil)).Return(false, nil)
		m.paymentRepo.On("GetByTxRef", txRef).Return(settled, nil).Once()

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, result.Payment.Status)
		assert.Equal(t, int64(55), result.Enrollment.ID)
		assert.True(t, result.AlreadySettled)
		m.enrollment.AssertNotCalled(t, "GrantOnce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the failure race echoes the settled state", func(t *testing.T) {
		svc, m := newPaymentService(t)

		settled := pendingPayment()
		settled.Status = model.PaymentStatusFailed

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil).Once()
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionFailed}, nil)
		m.paymentRepo.On("FailFromPending", context.Background(), txRef).Return(false, nil)
		m.paymentRepo.On("GetByTxRef", txRef).Return(settled, nil).Once()

		result, err := svc.Finalize(context.Background(), txRef)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Payment.Status)
	})

	t.Run("grant failure after winning the cas surfaces the error", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByTxRef", txRef).Return(pendingPayment(), nil)
		m.gateway.On("Verify", context.Background(), txRef).
			Return(chapa.VerifyResponse{Status: chapa.TransactionSuccess}, nil)
		m.paymentRepo.On("CompleteFromPending", context.Background(), txRef, (*string)(nil)).Return(true, nil)
		m.enrollment.On("GrantOnce", context.Background(), int64(42), int64(7)).
			Return((*model.Enrollment)(nil), service.NewServiceError(service.ErrCodeDatabase, errors.New("connection lost")))

		_, err := svc.Finalize(context.Background(), txRef)

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, service.ErrCodeDatabase, serviceErr.Code)
		m.paymentRepo.AssertNotCalled(t, "LinkEnrollment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPayment_GetHistory(t *testing.T) {
	t.Run("returns payments with total", func(t *testing.T) {
		svc, m := newPaymentService(t)

		payments := []model.Payment{*pendingPayment()}
		m.paymentRepo.On("GetByUserID", int64(42), 20, 0).Return(payments, nil)
		m.paymentRepo.On("CountByUserID", int64(42)).Return(1, nil)

		result, total, err := svc.GetHistory(service.GetHistoryQuery{UserID: 42, Limit: 20, Offset: 0})

		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("repository failure maps to database error", func(t *testing.T) {
		svc, m := newPaymentService(t)

		m.paymentRepo.On("GetByUserID", int64(42), 20, 0).
			Return(([]model.Payment)(nil), errors.New("connection lost"))

		_, _, err := svc.GetHistory(service.GetHistoryQuery{UserID: 42, Limit: 20, Offset: 0})

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, service.ErrCodeDatabase, serviceErr.Code)
	})
}
