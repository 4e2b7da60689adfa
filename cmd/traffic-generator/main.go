package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"moveit/internal/entities"
	"moveit/internal/generated/dto"
	"moveit/internal/pkg/middlewares/auth"
	"moveit/pkg/logger"
	"moveit/pkg/logger/zap_adapter"
)

const tokenTTL = time.Hour

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moveit_loadgen_requests_total",
		Help: "Запросы генератора нагрузки по операциям и кодам ответа",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moveit_loadgen_request_duration_seconds",
		Help:    "Длительность запроса генератора нагрузки в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"operation"})
)

type generator struct {
	client  *http.Client
	baseURL string
	log     logger.Logger

	driverToken string
	clientToken string
	driverID    string
}

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "moveit base URL")
		metricsAddr = flag.String("metrics", ":2112", "metrics listen address")
		interval    = flag.Duration("interval", time.Second, "pause between iterations")
		secret      = flag.String("secret", os.Getenv("JWT_SECRET"), "JWT secret of the service")
	)
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter("", logger.NewField("app", "moveit-traffic-generator"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	var log logger.Logger = zapLogger

	if *secret == "" {
		log.Error("JWT secret is required (-secret or JWT_SECRET)")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	gen, err := newGenerator(log, *baseURL, []byte(*secret))
	if err != nil {
		log.Error("generator init", logger.NewField("error", err))
		return
	}

	metricsServer := &http.Server{
		Addr:              *metricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", logger.NewField("error", err))
		}
	}()

	if err := gen.ensureDriver(ctx); err != nil {
		log.Error("driver profile", logger.NewField("error", err))
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = metricsServer.Shutdown(shutdownCtx)
			cancel()
			return
		case <-ticker.C:
			gen.iteration(ctx)
		}
	}
}

func newGenerator(log logger.Logger, baseURL string, secret []byte) (*generator, error) {
	driver := entities.Actor{ID: "loadgen-driver", Name: "Load Driver", Role: entities.RoleDriver}
	client := entities.Actor{ID: "loadgen-client", Name: "Load Client", Role: entities.RoleClient}

	driverToken, err := auth.IssueToken(secret, driver, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("driver token: %w", err)
	}
	clientToken, err := auth.IssueToken(secret, client, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("client token: %w", err)
	}

	return &generator{
		client:      &http.Client{Timeout: 5 * time.Second},
		baseURL:     baseURL,
		log:         log,
		driverToken: driverToken,
		clientToken: clientToken,
		driverID:    driver.ID,
	}, nil
}

// ensureDriver создает профиль водителя, 409 значит он уже есть.
func (g *generator) ensureDriver(ctx context.Context) error {
	body := dto.DriverCreate{
		Name:         "Load Driver",
		About:        "synthetic traffic from the load generator",
		ContactEmail: "loadgen@moveit.local",
		ContactPhone: "+10000000000",
	}

	status, err := g.do(ctx, "driver_create", http.MethodPost, "/driver", g.driverToken, body)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusConflict {
		return fmt.Errorf("unexpected status %d", status)
	}
	return nil
}

// iteration читает слоты на случайный день ближайшей недели и пробует
// забронировать случайный час. Часть попыток ожидаемо получает 409.
func (g *generator) iteration(ctx context.Context) {
	date := time.Now().AddDate(0, 0, 1+rand.IntN(7)).Format("2006-01-02")

	_, err := g.do(ctx, "slots_get", http.MethodGet, "/drivers/"+g.driverID+"/slots?date="+date, "", nil)
	if err != nil {
		g.log.Warn("slots request failed", logger.NewField("error", err))
		return
	}

	booking := dto.BookingCreate{
		DriverId:      g.driverID,
		Date:          date,
		StartTime:     fmt.Sprintf("%02d:00", 8+rand.IntN(9)),
		VehicleVolume: dto.Medium,
		Name:          "Load Client",
		Phone:         "+1000000" + strconv.Itoa(1000+rand.IntN(9000)),
		Comments:      pointer.To("generated"),
	}

	_, err = g.do(ctx, "booking_create", http.MethodPost, "/bookings", g.clientToken, booking)
	if err != nil {
		g.log.Warn("booking request failed", logger.NewField("error", err))
	}
}

func (g *generator) do(ctx context.Context, operation, method, path, token string, body any) (int, error) {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return 0, fmt.Errorf("encode %s: %w", operation, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, &payload)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return 0, fmt.Errorf("do %s: %w", operation, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	return resp.StatusCode, nil
}
