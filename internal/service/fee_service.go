package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// FeeService records monthly fee payments and reports arrears.
type FeeService interface {
	Record(ctx context.Context, req dto.FeePaymentRequest, actor Actor) (dto.FeePaymentResponse, error)
	List(ctx context.Context, filter repository.FeeFilter) (dto.FeePaymentListResponse, error)
	Outstanding(ctx context.Context, studentID uint, year int) (dto.OutstandingFeesResponse, error)
}

type feeService struct {
	repo      repository.FeeRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFeeService constructs the fee service.
func NewFeeService(repo repository.FeeRepository, validator *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "fee_service").Logger(),
		now:       time.Now,
	}
}

func (s *feeService) Record(ctx context.Context, req dto.FeePaymentRequest, actor Actor) (dto.FeePaymentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.FeePaymentResponse{}, err
	}

	payment := models.FeePayment{
		StudentID: req.StudentID,
		Month:     req.Month,
		Year:      req.Year,
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Note:      strings.TrimSpace(req.Note),
		PaidAt:    s.now(),
		CreatedBy: actor.ID,
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		return dto.FeePaymentResponse{}, err
	}

	return dto.NewFeePaymentResponse(payment), nil
}

func (s *feeService) List(ctx context.Context, filter repository.FeeFilter) (dto.FeePaymentListResponse, error) {
	filter.Page = normalizePage(filter.Page)
	filter.PageSize = clampPageSize(filter.PageSize)

	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.FeePaymentListResponse{}, err
	}

	items := make([]dto.FeePaymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, dto.NewFeePaymentResponse(payment))
	}

	return dto.FeePaymentListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *feeService) Outstanding(ctx context.Context, studentID uint, year int) (dto.OutstandingFeesResponse, error) {
	if year <= 0 {
		year = s.now().Year()
	}

	paid, err := s.repo.PaidMonths(ctx, studentID, year)
	if err != nil {
		return dto.OutstandingFeesResponse{}, err
	}

	paidSet := make(map[int]struct{}, len(paid))
	for _, month := range paid {
		paidSet[month] = struct{}{}
	}

	unpaid := make([]int, 0, 12)
	for month := 1; month <= 12; month++ {
		if _, ok := paidSet[month]; !ok {
			unpaid = append(unpaid, month)
		}
	}

	return dto.OutstandingFeesResponse{StudentID: studentID, Year: year, UnpaidMonths: unpaid}, nil
}
