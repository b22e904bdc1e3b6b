package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/mseongj/weather-outfit/config"
	"github.com/mseongj/weather-outfit/handlers"
	"github.com/mseongj/weather-outfit/httpclient"
	"github.com/mseongj/weather-outfit/kma"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/middleware"
	"github.com/mseongj/weather-outfit/outfit"
	"github.com/mseongj/weather-outfit/pexels"
	"github.com/mseongj/weather-outfit/recommend"
	"github.com/mseongj/weather-outfit/routes"
	"github.com/mseongj/weather-outfit/seoul"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "설정 파일 경로 (기본: 작업 디렉터리의 config.yaml, 없으면 환경변수만)")
	flag.Parse()

	conf, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정을 불러오지 못했습니다: %s\n", err)
		os.Exit(1)
	}
	log := logger.New(conf.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, log); err != nil {
		log.Error("서버 종료", logger.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, log *logger.Logger) error {
	// 읽기 전용 표는 시작 시 한 번 만들어 주입합니다.
	districts := seoul.NewDirectory()
	guide := outfit.Default()

	client := httpclient.New(log)
	weather := kma.New(client, log, districts, kma.Options{
		APIKey:   conf.KMA.APIKey,
		Endpoint: conf.KMA.Endpoint,
		Timeout:  conf.KMA.Timeout,
	})
	images := pexels.New(client, log, pexels.Options{
		APIKey:   conf.Pexels.APIKey,
		Endpoint: conf.Pexels.Endpoint,
		Timeout:  conf.Pexels.Timeout,
		Policy: pexels.Policy{
			PerPage:        conf.Pexels.PerPage,
			MaxPage:        conf.Pexels.MaxPage,
			MaxImages:      conf.Pexels.MaxImages,
			MinAspectRatio: conf.Pexels.MinAspectRatio,
			MinHeight:      conf.Pexels.MinHeight,
		},
	})
	if conf.KMA.APIKey == "" || conf.Pexels.APIKey == "" {
		log.Warn("API 키가 비어 있습니다. 해당 요청은 서버 설정 오류로 응답합니다",
			"kma", conf.KMA.APIKey != "", "pexels", conf.Pexels.APIKey != "")
	}

	svc := recommend.New(districts, weather, guide, images, time.Now, log)
	h := handlers.New(districts, weather, images, svc, time.Now, log)

	opts := routes.Options{StaticDir: conf.StaticDir}
	if !conf.RateLimit.Disabled {
		opts.RateLimit = middleware.NewRateLimiter(ctx, rate.Limit(conf.RateLimit.RPS), conf.RateLimit.Burst).Middleware
	}
	router := routes.SetupRoutes(h, opts)

	srv := &http.Server{
		Addr:              conf.Addr,
		Handler:           middleware.AccessLog(log)(middleware.CORS(conf.CORS.AllowedOrigin)(router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("서버 시작", "addr", conf.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("종료 신호 수신, 진행 중인 요청을 마무리합니다")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("종료 완료")
	return nil
}
