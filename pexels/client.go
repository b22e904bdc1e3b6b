package pexels

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/httpclient"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/models"
)

const (
	// DefaultEndpoint는 Pexels 사진 검색 엔드포인트입니다.
	DefaultEndpoint = "https://api.pexels.com/v1/search"
	// DefaultTimeout은 Pexels 응답 대기 한도입니다.
	DefaultTimeout = 4 * time.Second

	provider = "pexels"
)

// Policy는 검색·필터·표본 추출 값입니다. 제품 튜닝 값이라 설정으로 바꿀 수 있습니다.
type Policy struct {
	PerPage        int     // 한 번에 받을 사진 수
	MaxPage        int     // 1..MaxPage 중 무작위 페이지
	MaxImages      int     // 돌려줄 최대 장수
	MinAspectRatio float64 // 세로형 기준 (height / width)
	MinHeight      int     // 세로형이 없을 때의 최소 높이
}

// DefaultPolicy는 세로 슬롯(200x300) 화면에 맞춘 기본값입니다.
func DefaultPolicy() Policy {
	return Policy{PerPage: 20, MaxPage: 3, MaxImages: 5, MinAspectRatio: 1.5, MinHeight: 300}
}

// Rand는 검색어·페이지 선택과 표본 추출에 쓰는 난수원입니다.
// *rand.Rand 가 이 인터페이스를 만족합니다.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Options는 Client 생성 옵션입니다. Rand 가 nil 이면 동시 사용에 안전한 기본 난수원을 씁니다.
type Options struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	Policy   Policy
	Rand     Rand
}

// Client는 Pexels 사진 검색 클라이언트입니다.
type Client struct {
	http     *httpclient.Client
	logger   *logger.Logger
	apiKey   string
	endpoint string
	timeout  time.Duration
	policy   Policy
	rand     Rand
}

// New는 Client 를 만듭니다.
func New(client *httpclient.Client, log *logger.Logger, opts Options) *Client {
	c := &Client{
		http:     client,
		logger:   log,
		apiKey:   opts.APIKey,
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		policy:   opts.Policy,
		rand:     opts.Rand,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.policy == (Policy{}) {
		c.policy = DefaultPolicy()
	}
	if c.rand == nil {
		c.rand = newLockedRand()
	}
	return c
}

// FetchImages는 검색어 후보 중 하나와 무작위 페이지로 검색한 뒤,
// 세로형 사진(없으면 높이 기준) 중 최대 MaxImages 장을 무작위로 골라 URL 을 돌려줍니다.
// 결과가 없으면 에러 없이 빈 목록입니다.
func (c *Client) FetchImages(ctx context.Context, keywords []string) ([]string, error) {
	candidates := cleanKeywords(keywords)
	if len(candidates) == 0 {
		return nil, apperr.ErrMissingKeyword
	}
	if c.apiKey == "" {
		c.logger.Error("Pexels API 키가 설정되지 않았습니다")
		return nil, apperr.ErrMissingCredential
	}

	keyword := candidates[c.rand.IntN(len(candidates))]
	page := c.rand.IntN(c.policy.MaxPage) + 1
	c.logger.Info("Pexels 요청", "candidates", len(candidates), "keyword", keyword, "page", page)

	query := url.Values{}
	query.Set("query", keyword)
	query.Set("per_page", strconv.Itoa(c.policy.PerPage))
	query.Set("page", strconv.Itoa(page))

	var resp models.PexelsSearchResponse
	status, err := c.http.Get(ctx, provider, c.endpoint+"?"+query.Encode(), &resp,
		map[string]string{"Authorization": c.apiKey}, c.timeout)
	if err != nil {
		err = classify(status, err)
		c.logger.Error("Pexels 호출 실패", "stage", "images", "status", status, logger.Err(err))
		return nil, err
	}

	c.logger.Info("Pexels 응답", "photos", len(resp.Photos))
	if len(resp.Photos) == 0 {
		return []string{}, nil
	}

	pool := c.policy.pool(resp.Photos)
	if len(pool) == 0 {
		return []string{}, nil
	}
	images := c.sample(pool)
	c.logger.Info("Pexels 완료", "pool", len(pool), "selected", len(images))
	return images, nil
}

// pool은 세로형 사진을 고르고, 하나도 없으면 전체에서 높이 기준으로 다시 고릅니다.
func (p Policy) pool(photos []models.PexelsPhoto) []models.PexelsPhoto {
	portrait := make([]models.PexelsPhoto, 0, len(photos))
	for _, photo := range photos {
		if p.portrait(photo) {
			portrait = append(portrait, photo)
		}
	}
	if len(portrait) > 0 {
		return portrait
	}

	tall := make([]models.PexelsPhoto, 0, len(photos))
	for _, photo := range photos {
		if photo.Height >= p.MinHeight {
			tall = append(tall, photo)
		}
	}
	return tall
}

// portrait는 세로/가로 비율이 MinAspectRatio 이상인지 봅니다.
// 너비가 0 이면 비율이 무한대이므로 높이만 있으면 세로형입니다.
func (p Policy) portrait(photo models.PexelsPhoto) bool {
	if photo.Width <= 0 {
		return photo.Height > 0
	}
	return float64(photo.Height)/float64(photo.Width) >= p.MinAspectRatio
}

// sample은 pool 사본을 섞어 최대 MaxImages 장의 URL 을 고릅니다 (비복원 추출).
func (c *Client) sample(pool []models.PexelsPhoto) []string {
	shuffled := make([]models.PexelsPhoto, len(pool))
	copy(shuffled, pool)
	c.rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	images := make([]string, 0, min(len(shuffled), c.policy.MaxImages))
	for _, photo := range shuffled {
		if len(images) == c.policy.MaxImages {
			break
		}
		if src := imageURL(photo); src != "" {
			images = append(images, src)
		}
	}
	return images
}

func imageURL(photo models.PexelsPhoto) string {
	if photo.Src.Portrait != "" {
		return photo.Src.Portrait
	}
	return photo.Src.Large
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func classify(status int, err error) error {
	if httpclient.IsTimeout(err) {
		return fmt.Errorf("%w: %w", apperr.ErrProviderTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, httpclient.ErrUnexpectedStatus) {
		if status == http.StatusUnauthorized {
			return fmt.Errorf("%w: HTTP %d", apperr.ErrProviderAuth, status)
		}
		return &apperr.ProviderError{Provider: provider, Status: status, Message: http.StatusText(status)}
	}
	var decodeErr *httpclient.DecodeError
	if errors.As(err, &decodeErr) {
		return &apperr.ProviderError{Provider: provider, Status: status, Message: "invalid response body"}
	}
	return fmt.Errorf("Pexels API 요청 실패: %w", err)
}

// lockedRand는 여러 요청이 함께 쓰는 기본 난수원입니다.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
