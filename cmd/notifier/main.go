package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/example/agent-assist/internal/models"
)

var (
	ordersConsumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifier_orders_consumed_total",
		Help: "Total submitted orders consumed",
	})
	ordersInvalid = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifier_orders_invalid_total",
		Help: "Total invalid messages received",
	})
	ordersDuplicate = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifier_orders_duplicate_total",
		Help: "Total orders skipped as already notified",
	})
	notifyErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifier_errors_total",
		Help: "Total notification errors",
	})
)

func init() {
	prometheus.MustRegister(ordersConsumed, ordersInvalid, ordersDuplicate, notifyErrors)
}

func main() {
	// allow some flags for local runs
	var metricsAddr string
	flag.StringVar(&metricsAddr, "metrics-addr", ":2112", "address to serve prometheus metrics on")
	flag.Parse()

	brokersEnv := os.Getenv("KAFKA_BROKERS")
	brokers := []string{}
	if brokersEnv != "" {
		for _, b := range strings.Split(brokersEnv, ",") {
			if s := strings.TrimSpace(b); s != "" {
				brokers = append(brokers, s)
			}
		}
	}
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "order-submissions"
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: "agent-assist-notifier",
	})
	defer reader.Close()

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("notifier metrics on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	log.Printf("notifier consuming %s from %v", topic, brokers)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("notifier shutting down")
				return
			}
			log.Printf("read error: %v", err)
			continue
		}

		var order models.Order
		if err := json.Unmarshal(msg.Value, &order); err != nil || order.ID == "" {
			ordersInvalid.Inc()
			continue
		}
		ordersConsumed.Inc()

		// Redis mark keeps re-delivered orders from double-notifying.
		if rdb != nil {
			set, err := rdb.SetNX(ctx, "notified:"+order.ID, time.Now().Format(time.RFC3339), 7*24*time.Hour).Result()
			if err != nil {
				notifyErrors.Inc()
				log.Printf("redis error: %v", err)
			} else if !set {
				ordersDuplicate.Inc()
				continue
			}
		}

		// Actual delivery (email/SMS) hangs off here; for now the log line
		// is the notification.
		log.Printf("new request: order=%s type=%s date=%s customer=%s total=%.2f",
			order.ID, order.Request.ServiceType, order.Request.ScheduledDate,
			order.Contact.Name, order.Quote.Total)
	}
}
