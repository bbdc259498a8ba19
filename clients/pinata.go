package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"SehatCare/models"
)

type PinataClient struct {
	httpClient *http.Client
	jwt        string
	apiURL     string
	gatewayURL string
}

func NewPinataClient(jwt, apiURL, gatewayURL string) *PinataClient {
	return &PinataClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		jwt:        jwt,
		apiURL:     strings.TrimRight(apiURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/") + "/",
	}
}

type pinResponse struct {
	IpfsHash  string    `json:"IpfsHash"`
	PinSize   int64     `json:"PinSize"`
	Timestamp time.Time `json:"Timestamp"`
}

type pinListResponse struct {
	Rows []struct {
		IpfsPinHash string    `json:"ipfs_pin_hash"`
		DatePinned  time.Time `json:"date_pinned"`
		Metadata    struct {
			Name      string                 `json:"name"`
			KeyValues map[string]interface{} `json:"keyvalues"`
		} `json:"metadata"`
	} `json:"rows"`
}

func (p *PinataClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+p.jwt)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clients: pinata request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("clients: pinata returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Upload pins the file to IPFS with a name and upload metadata.
func (p *PinataClient) Upload(ctx context.Context, name, contentType string, data []byte) (models.VaultFile, error) {
	now := time.Now().UTC()
	metadata := map[string]interface{}{
		"name": name,
		"keyvalues": map[string]string{
			"uploadedAt": now.Format(time.RFC3339),
			"fileType":   contentType,
		},
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return models.VaultFile{}, err
	}
	if _, err := part.Write(data); err != nil {
		return models.VaultFile{}, err
	}
	meta, _ := json.Marshal(metadata)
	if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
		return models.VaultFile{}, err
	}
	if err := w.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return models.VaultFile{}, err
	}
	if err := w.Close(); err != nil {
		return models.VaultFile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return models.VaultFile{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var pinned pinResponse
	if err := p.do(req, &pinned); err != nil {
		return models.VaultFile{}, err
	}
	return models.VaultFile{
		Name:      name,
		Hash:      pinned.IpfsHash,
		URL:       p.gatewayURL + pinned.IpfsHash,
		Timestamp: now,
		Metadata:  map[string]string{"fileType": contentType},
	}, nil
}

func (p *PinataClient) List(ctx context.Context) ([]models.VaultFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"/data/pinList?status=pinned", nil)
	if err != nil {
		return nil, err
	}
	var list pinListResponse
	if err := p.do(req, &list); err != nil {
		return nil, err
	}
	files := make([]models.VaultFile, 0, len(list.Rows))
	for _, row := range list.Rows {
		meta := make(map[string]string, len(row.Metadata.KeyValues))
		for k, v := range row.Metadata.KeyValues {
			meta[k] = fmt.Sprint(v)
		}
		files = append(files, models.VaultFile{
			Name:      row.Metadata.Name,
			Hash:      row.IpfsPinHash,
			URL:       p.gatewayURL + row.IpfsPinHash,
			Timestamp: row.DatePinned,
			Metadata:  meta,
		})
	}
	return files, nil
}
