package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "glam-admin/internal/domain/upload"
	xerrors "glam-admin/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TicketIssuer is the API side of an upload: signing and asset cleanup.
type TicketIssuer interface {
	RequestTicket(ctx context.Context) (domain.Ticket, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

type Config struct {
	MediaHost   string
	MaxFiles    int
	Concurrency int
	Timeout     time.Duration
}

// Uploader pushes files straight to the media host with a signed ticket,
// keeping binaries off the admin API.
type Uploader struct {
	issuer TicketIssuer
	http   *http.Client
	cfg    Config
	logger *zap.Logger
}

func NewUploader(issuer TicketIssuer, cfg Config, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 8
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.MediaHost = strings.TrimRight(cfg.MediaHost, "/")
	return &Uploader{
		issuer: issuer,
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

func (u *Uploader) MaxFiles() int { return u.cfg.MaxFiles }

func (u *Uploader) RequestTicket(ctx context.Context) (domain.Ticket, error) {
	t, err := u.issuer.RequestTicket(ctx)
	if err != nil {
		if xerrors.IsAuth(err) {
			return domain.Ticket{}, err
		}
		return domain.Ticket{}, xerrors.UploadError(xerrors.UserMessage(err, "Could not get upload signature"), err)
	}
	return t, nil
}

type hostResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	AssetID   string `json:"assetId"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *Uploader) endpoint(t domain.Ticket) string {
	host := u.cfg.MediaHost
	if t.Host != "" {
		host = strings.TrimRight(t.Host, "/")
	}
	return fmt.Sprintf("%s/v1_1/%s/auto/upload", host, url.PathEscape(t.CloudName))
}

// UploadFile sends one file with the ticket fields as a multipart form.
func (u *Uploader) UploadFile(ctx context.Context, f domain.File, t domain.Ticket) (domain.Asset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range t.Fields() {
		if err := mw.WriteField(k, v); err != nil {
			return domain.Asset{}, xerrors.UploadError("Upload failed", err)
		}
	}
	part, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return domain.Asset{}, xerrors.UploadError("Upload failed", err)
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return domain.Asset{}, xerrors.UploadError("Could not read file", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Asset{}, xerrors.UploadError("Upload failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint(t), &buf)
	if err != nil {
		return domain.Asset{}, xerrors.UploadError("Upload failed", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return domain.Asset{}, xerrors.UploadError("Upload failed", err)
	}
	defer resp.Body.Close()

	var out hostResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil && resp.StatusCode < 300 {
		return domain.Asset{}, xerrors.UploadError("Upload failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || out.Error != nil {
		msg := "Upload failed"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return domain.Asset{}, xerrors.UploadError(msg, fmt.Errorf("media host returned %d", resp.StatusCode))
	}

	asset := domain.Asset{
		URL:     firstNonEmpty(out.SecureURL, out.URL),
		AssetID: firstNonEmpty(out.PublicID, out.AssetID),
	}
	if asset.URL == "" {
		return domain.Asset{}, xerrors.UploadError("Upload failed", errors.New("media host returned no url"))
	}

	u.logger.Info("asset uploaded",
		zap.String("file", f.Name),
		zap.String("asset_id", asset.AssetID),
	)
	return asset, nil
}

// Upload signs and sends a single file.
func (u *Uploader) Upload(ctx context.Context, f domain.File) (domain.Asset, error) {
	t, err := u.RequestTicket(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	return u.UploadFile(ctx, f, t)
}

// UploadBatch sends up to MaxFiles-existing files under one ticket. The
// successes come back in input order even when some uploads fail; failures
// are reported together and nothing already uploaded is rolled back.
func (u *Uploader) UploadBatch(ctx context.Context, files []domain.File, existing int) ([]domain.Asset, error) {
	room := u.cfg.MaxFiles - existing
	if room <= 0 {
		return nil, xerrors.UploadError(fmt.Sprintf("You can add at most %d images", u.cfg.MaxFiles), nil)
	}
	if len(files) == 0 {
		return []domain.Asset{}, nil
	}

	requested := len(files)
	var overflow error
	if len(files) > room {
		overflow = fmt.Errorf("%d file(s) skipped: limit is %d images", len(files)-room, u.cfg.MaxFiles)
		files = files[:room]
	}

	t, err := u.RequestTicket(ctx)
	if err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.cfg.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			a, err := u.UploadFile(gctx, f, t)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", f.Name, err)
				return nil
			}
			assets[i] = a
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Asset, 0, len(files))
	failed := []error{}
	for i := range files {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		out = append(out, assets[i])
	}
	if overflow != nil {
		failed = append(failed, overflow)
	}
	if len(failed) > 0 {
		u.logger.Warn("batch upload incomplete",
			zap.Int("requested", requested),
			zap.Int("uploaded", len(out)),
			zap.Error(errors.Join(failed...)),
		)
		return out, xerrors.UploadError(
			fmt.Sprintf("%d of %d uploads failed", requested-len(out), requested),
			errors.Join(failed...),
		)
	}
	return out, nil
}

// DeleteAsset removes an uploaded asset. Failures are logged and dropped:
// removing an image from a draft must succeed regardless.
func (u *Uploader) DeleteAsset(ctx context.Context, assetID string) {
	if strings.TrimSpace(assetID) == "" {
		return
	}
	if err := u.issuer.DeleteAsset(ctx, assetID); err != nil {
		u.logger.Warn("asset cleanup failed",
			zap.String("asset_id", assetID),
			zap.Error(err),
		)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
