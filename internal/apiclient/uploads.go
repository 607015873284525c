package apiclient

import (
	"context"
	"net/http"

	"glam-admin/internal/domain/upload"
	xerrors "glam-admin/internal/pkg/errors"
)

type UploadsAPI struct {
	c *Client
}

func NewUploadsAPI(c *Client) *UploadsAPI {
	return &UploadsAPI{c: c}
}

// RequestTicket asks the API to sign a direct upload.
func (a *UploadsAPI) RequestTicket(ctx context.Context) (upload.Ticket, error) {
	env, err := a.c.do(ctx, request{method: http.MethodPost, path: "/uploads"})
	if err != nil {
		return upload.Ticket{}, err
	}
	var t upload.Ticket
	if err := decodeData(env, &t); err != nil {
		return upload.Ticket{}, err
	}
	if t.Signature == "" || (t.CloudName == "" && t.Host == "") {
		return upload.Ticket{}, xerrors.UploadError("Upload signature missing", nil)
	}
	return t, nil
}

func (a *UploadsAPI) DeleteAsset(ctx context.Context, assetID string) error {
	_, err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/uploads/delete",
		body:   upload.DeleteAssetRequest{AssetID: assetID, PublicID: assetID},
	})
	return err
}
