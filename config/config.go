package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
)

const configEnv = "OUTFIT"

// Config는 서버 전체 설정입니다. 파일(config.yaml, 선택) → 환경변수 순으로 읽습니다.
type Config struct {
	Addr      string     `fig:"addr" default:":8080"`
	StaticDir string     `fig:"static_dir" default:"./public/"`
	LogLevel  slog.Level `fig:"loglevel" default:"0"`

	CORS struct {
		AllowedOrigin string `fig:"allowed_origin" default:"*"`
	} `fig:"cors"`

	RateLimit struct {
		Disabled bool    `fig:"disabled"`
		RPS      float64 `fig:"rps" default:"5"`
		Burst    int     `fig:"burst" default:"10"`
	} `fig:"ratelimit"`

	KMA struct {
		APIKey   string        `fig:"api_key"`
		Endpoint string        `fig:"endpoint" default:"https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getUltraSrtNcst"`
		Timeout  time.Duration `fig:"timeout" default:"8s"`
	} `fig:"kma"`

	Pexels struct {
		APIKey         string        `fig:"api_key"`
		Endpoint       string        `fig:"endpoint" default:"https://api.pexels.com/v1/search"`
		Timeout        time.Duration `fig:"timeout" default:"4s"`
		PerPage        int           `fig:"per_page" default:"20"`
		MaxPage        int           `fig:"max_page" default:"3"`
		MaxImages      int           `fig:"max_images" default:"5"`
		MinAspectRatio float64       `fig:"min_aspect_ratio" default:"1.5"`
		MinHeight      int           `fig:"min_height" default:"300"`
	} `fig:"pexels"`
}

// Load는 .env 를 먼저 읽고(없어도 무방) 설정을 불러옵니다.
// file 이 비어 있으면 작업 디렉터리의 config.yaml 을 찾되, 없으면 기본값과 환경변수만 사용합니다.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(".env 로드 실패: %w", err)
	}

	conf := new(Config)
	opts := []fig.Option{fig.UseEnv(configEnv)}
	if file == "" {
		opts = append(opts, fig.AllowNoFile())
	} else {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("설정 파일 확인 실패: %w", err)
		}
		opts = append(opts, fig.Dirs(filepath.Dir(file)), fig.File(filepath.Base(file)))
	}
	if err := fig.Load(conf, opts...); err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	conf.applyLegacyEnv()

	return conf, conf.Validate()
}

// applyLegacyEnv는 기존 배포에서 쓰던 환경변수 이름을 존중합니다.
func (c *Config) applyLegacyEnv() {
	if c.KMA.APIKey == "" {
		c.KMA.APIKey = os.Getenv("KMA_API_KEY")
	}
	if c.Pexels.APIKey == "" {
		c.Pexels.APIKey = firstEnv("PEXELS_API_KEY", "NEXT_PUBLIC_PEXELS_API_KEY")
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv(configEnv+"_ADDR") == "" {
		c.Addr = ":" + port
	}
}

// Validate는 값 범위를 검사합니다. API 키가 없는 것은 여기서 실패시키지 않고
// 요청 시점에 설정 오류로 응답합니다.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr 가 비어 있습니다")
	}
	if c.LogLevel < slog.LevelDebug || c.LogLevel > slog.LevelError {
		return fmt.Errorf("invalid loglevel: %d", c.LogLevel)
	}
	if !c.RateLimit.Disabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("invalid rate limit: rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	if c.KMA.Timeout <= 0 {
		return fmt.Errorf("invalid kma timeout: %s", c.KMA.Timeout)
	}
	if c.Pexels.Timeout <= 0 {
		return fmt.Errorf("invalid pexels timeout: %s", c.Pexels.Timeout)
	}
	if c.Pexels.PerPage < 1 || c.Pexels.PerPage > 80 {
		return fmt.Errorf("invalid pexels per_page: %d", c.Pexels.PerPage)
	}
	if c.Pexels.MaxPage < 1 {
		return fmt.Errorf("invalid pexels max_page: %d", c.Pexels.MaxPage)
	}
	if c.Pexels.MaxImages < 1 || c.Pexels.MaxImages > c.Pexels.PerPage {
		return fmt.Errorf("invalid pexels max_images: %d", c.Pexels.MaxImages)
	}
	if c.Pexels.MinAspectRatio <= 0 {
		return fmt.Errorf("invalid pexels min_aspect_ratio: %v", c.Pexels.MinAspectRatio)
	}
	if c.Pexels.MinHeight < 0 {
		return fmt.Errorf("invalid pexels min_height: %d", c.Pexels.MinHeight)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
