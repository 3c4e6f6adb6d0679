package services

import (
	"context"
	"fmt"
	"net/url"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"
	"time"
)

const (
	DefaultQRImageURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&color=FF5823&bgcolor=FFFFFF&data="
	DefaultBatchSize  = 10
	MaxBatchSize      = 100
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

type QRBatchError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type QRBatchResult struct {
	QRCodes        []domain.QRCode `json:"qr_codes"`
	Errors         []QRBatchError  `json:"errors"`
	TotalGenerated int             `json:"total_generated"`
	TotalErrors    int             `json:"total_errors"`
}

type QRPage struct {
	Items []domain.QRCode `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// QRCodeService issues and administers pre-printed bag QR codes.
type QRCodeService struct {
	repo     ports.QRCodeRepository
	imageURL string
	baseURL  string
	now      func() time.Time
}

// NewQRCodeService builds the service. imageURL is a QR image endpoint to
// which the escaped code URL is appended; baseURL is the public site the
// codes point at.
func NewQRCodeService(repo ports.QRCodeRepository, imageURL, baseURL string) *QRCodeService {
	if strings.TrimSpace(imageURL) == "" {
		imageURL = DefaultQRImageURL
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = domain.DefaultPublicBaseURL
	}
	return &QRCodeService{repo: repo, imageURL: imageURL, baseURL: baseURL, now: time.Now}
}

// Generate issues one code. An empty bagID gets a fresh one, an empty
// baseURL uses the service default.
func (s *QRCodeService) Generate(ctx context.Context, bagID, baseURL string) (_ domain.QRCode, err error) {
	defer obs.Time(ctx, "qrcodes.Generate")(&err)

	now := s.now().UTC()
	bagID = strings.TrimSpace(bagID)
	if bagID == "" {
		bagID = domain.NewQRBagID(now)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = s.baseURL
	}

	qrURL := domain.QRCodeURL(baseURL, bagID)
	qr := domain.QRCode{
		BagID:       bagID,
		QRURL:       qrURL,
		ImageURL:    s.imageURL + url.QueryEscape(qrURL),
		StoragePath: "qr-" + bagID + ".png",
		Status:      domain.QRActive,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, qr); err != nil {
		return domain.QRCode{}, fmt.Errorf("generate qr code bag_id=%s: %w", bagID, err)
	}
	return qr, nil
}

// GenerateBatch issues count codes, clamped to [1, MaxBatchSize]. Failures
// are collected per index and do not stop the batch.
func (s *QRCodeService) GenerateBatch(ctx context.Context, count int, baseURL string) (QRBatchResult, error) {
	switch {
	case count <= 0:
		count = DefaultBatchSize
	case count > MaxBatchSize:
		count = MaxBatchSize
	}

	res := QRBatchResult{QRCodes: []domain.QRCode{}, Errors: []QRBatchError{}}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("generate qr batch: %w", err)
		}
		qr, err := s.Generate(ctx, "", baseURL)
		if err != nil {
			res.Errors = append(res.Errors, QRBatchError{Index: i, Error: err.Error()})
			continue
		}
		res.QRCodes = append(res.QRCodes, qr)
	}

	res.TotalGenerated = len(res.QRCodes)
	res.TotalErrors = len(res.Errors)
	obs.Logf(ctx, "qr batch requested=%d generated=%d errors=%d", count, res.TotalGenerated, res.TotalErrors)
	return res, nil
}

func (s *QRCodeService) Stats(ctx context.Context) (domain.QRStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.QRStats{}, fmt.Errorf("qr stats: %w", err)
	}
	return st, nil
}

// List returns one page of codes, newest first. Pages start at 1.
func (s *QRCodeService) List(ctx context.Context, page, limit int) (QRPage, error) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return QRPage{}, fmt.Errorf("list qr codes page=%d: %w", page, err)
	}
	if items == nil {
		items = []domain.QRCode{}
	}
	return QRPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *QRCodeService) Get(ctx context.Context, bagID string) (domain.QRCode, error) {
	return s.repo.Get(ctx, bagID)
}

func (s *QRCodeService) Delete(ctx context.Context, bagID string) error {
	if err := s.repo.Delete(ctx, bagID); err != nil {
		return fmt.Errorf("delete qr code bag_id=%s: %w", bagID, err)
	}
	obs.Logf(ctx, "qr deleted bag_id=%s", bagID)
	return nil
}
