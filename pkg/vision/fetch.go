package vision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxFetchBytes — предохранитель от гигантских ответов.
const maxFetchBytes = 32 << 20

// Fetcher скачивает содержимое по ссылке из таблицы вендора.
//
// Возвращает байты и Content-Type ответа (пустая строка, если
// источник его не сообщает).
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (data []byte, contentType string, err error)
}

// HTTPClient — интерфейс для выполнения HTTP запросов.
// Позволяет мокать HTTP клиент в тестах.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher скачивает картинки по http/https ссылкам.
type HTTPFetcher struct {
	Client  HTTPClient
	Timeout time.Duration
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher создает fetcher с обычным http.Client и таймаутом.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

// Fetch выполняет GET и возвращает тело ответа.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read body %s: %w", ref, err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// ObjectStore — минимальный контракт S3 хранилища для fetcher'а.
type ObjectStore interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	Bucket() string
}

// RefFetcher маршрутизирует ссылку по схеме:
//
//	http/https -> HTTP скачивание
//	s3://      -> объектное хранилище
//	прочее     -> локальный файл (удобно для CLI)
type RefFetcher struct {
	HTTP  Fetcher
	Store ObjectStore // nil, если S3 не настроен
}

var _ Fetcher = (*RefFetcher)(nil)

// Fetch скачивает содержимое по ссылке любого поддерживаемого вида.
func (f *RefFetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.HTTP.Fetch(ctx, ref)

	case strings.HasPrefix(ref, "s3://"):
		if f.Store == nil {
			return nil, "", fmt.Errorf("s3 ref %q but storage is not configured", ref)
		}
		key := strings.TrimPrefix(ref, "s3://")
		// Ссылки вида s3://bucket/key: отрезаем имя своего бакета
		if b := f.Store.Bucket(); b != "" && strings.HasPrefix(key, b+"/") {
			key = strings.TrimPrefix(key, b+"/")
		}
		data, err := f.Store.DownloadFile(ctx, key)
		if err != nil {
			return nil, "", fmt.Errorf("download %s: %w", ref, err)
		}
		return data, "", nil

	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", ref, err)
		}
		return data, "", nil
	}
}
