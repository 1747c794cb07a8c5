package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	garageclient "github.com/Kevrnd/car-garage/internal/client/http/garage/v1"
	"github.com/Kevrnd/car-garage/internal/config"
	"github.com/Kevrnd/car-garage/internal/converter"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/internal/repository/archive"
	chgconsumer "github.com/Kevrnd/car-garage/internal/service/consumer/change"
	"github.com/Kevrnd/car-garage/internal/service/garage"
	chgproducer "github.com/Kevrnd/car-garage/internal/service/producer/change"
	"github.com/Kevrnd/car-garage/internal/service/report"
	"github.com/Kevrnd/car-garage/internal/transport/http/health"
	"github.com/Kevrnd/car-garage/platform/closer"
	"github.com/Kevrnd/car-garage/platform/kafka"
	"github.com/Kevrnd/car-garage/platform/kafka/consumer"
	"github.com/Kevrnd/car-garage/platform/kafka/middleware"
	"github.com/Kevrnd/car-garage/platform/kafka/producer"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type GarageClient interface {
	garage.GarageClient
	Login(ctx context.Context, username, password string) error
	SessionID() string
	CSRFToken() string
	ListCars(ctx context.Context) ([]model.Car, error)
	Car(ctx context.Context, carID int64) (model.Car, error)
	CreateCar(ctx context.Context, in model.CarInput) (model.Car, error)
	UpdateCar(ctx context.Context, carID int64, in model.CarInput) (model.Car, error)
	DeleteCar(ctx context.Context, carID int64) error
	ExportReport(ctx context.Context, carID int64, from, to time.Time) (model.ExportedReport, error)
}

type Converter interface {
	chgproducer.Converter
	chgconsumer.Converter
}

type ReportRenderer interface {
	Filename(car model.Car, rep model.Report) string
	Render(car model.Car, rep model.Report) ([]byte, error)
}

type ReportArchive interface {
	SaveReport(ctx context.Context, carID int64, rep model.ExportedReport) (string, error)
}

type ChangeConsumer interface {
	RunChangeConsume(ctx context.Context) error
}

type di struct {
	garageClient GarageClient
	store        *garage.Store

	conv Converter

	syncProducer    sarama.SyncProducer
	changesProducer kafka.Producer
	publisher       garage.ChangePublisher

	consumerGroup   sarama.ConsumerGroup
	changesConsumer kafka.Consumer
	changeConsumer  ChangeConsumer

	renderer ReportRenderer

	s3Client *s3.Client
	archive  ReportArchive

	watchHandler http.Handler
}

func NewDI() *di { return &di{} }

// GarageClient logs in with the configured credentials unless a saved session is given.
func (d *di) GarageClient(ctx context.Context) (GarageClient, error) {
	if d.garageClient == nil {
		cfg := config.C().Backend

		c, err := garageclient.NewClient(garageclient.Options{
			BaseURL:   cfg.BaseURL(),
			Timeout:   cfg.Timeout(),
			SessionID: cfg.SessionID(),
			CSRFToken: cfg.CSRFToken(),
		})
		if err != nil {
			return nil, err
		}

		if cfg.SessionID() == "" && cfg.Username() != "" {
			if err := c.Login(ctx, cfg.Username(), cfg.Password()); err != nil {
				return nil, err
			}
			logger.Debug(ctx, "logged in", logger.String("username", cfg.Username()))
		}

		d.garageClient = c
	}

	return d.garageClient, nil
}

func (d *di) Store(ctx context.Context) (*garage.Store, error) {
	if d.store == nil {
		carID := config.C().Backend.CarID()
		if carID <= 0 {
			return nil, fmt.Errorf("%w: GARAGE_CAR_ID is not set", model.ErrInvalidArgument)
		}

		client, err := d.GarageClient(ctx)
		if err != nil {
			return nil, err
		}

		d.store = garage.NewStore(carID, client, d.ChangePublisher(ctx))
	}

	return d.store, nil
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ChangeProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) ChangesProducer(ctx context.Context) kafka.Producer {
	if d.changesProducer == nil {
		d.changesProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.ChangesTopic(),
			logger.L(),
		)
	}

	return d.changesProducer
}

// ChangePublisher drops events when no brokers are configured.
func (d *di) ChangePublisher(ctx context.Context) garage.ChangePublisher {
	if d.publisher == nil {
		if !config.C().Kafka.Enabled() {
			d.publisher = chgproducer.NewNopPublisher()
			return d.publisher
		}

		d.publisher = chgproducer.NewChangeProducer(
			d.ChangesProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.publisher
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ConsumerGroupID(),
			cfg.Kafka.ChangeConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) ChangesConsumer(ctx context.Context) kafka.Consumer {
	if d.changesConsumer == nil {
		d.changesConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.ChangesTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.changesConsumer
}

func (d *di) ChangeConsumer(ctx context.Context) (ChangeConsumer, error) {
	if d.changeConsumer == nil {
		if !config.C().Kafka.Enabled() {
			return nil, fmt.Errorf("%w: KAFKA_BROKERS is not set", model.ErrInvalidArgument)
		}

		store, err := d.Store(ctx)
		if err != nil {
			return nil, err
		}

		d.changeConsumer = chgconsumer.NewChangeConsumer(
			d.ChangesConsumer(ctx),
			d.KafkaConverter(ctx),
			store,
		)
	}

	return d.changeConsumer, nil
}

func (d *di) ReportRenderer(_ context.Context) ReportRenderer {
	if d.renderer == nil {
		d.renderer = report.NewXLSXRenderer()
	}

	return d.renderer
}

func (d *di) S3Client(ctx context.Context) (*s3.Client, error) {
	if d.s3Client == nil {
		c, err := archive.NewClient(ctx, archiveConfig())
		if err != nil {
			return nil, err
		}

		d.s3Client = c
	}

	return d.s3Client, nil
}

func (d *di) ReportArchive(ctx context.Context) (ReportArchive, error) {
	if d.archive == nil {
		if !config.C().Archive.Enabled() {
			return nil, fmt.Errorf("%w: ARCHIVE_BUCKET is not set", model.ErrInvalidArgument)
		}

		c, err := d.S3Client(ctx)
		if err != nil {
			return nil, err
		}

		d.archive = archive.NewRepository(c, archiveConfig())
	}

	return d.archive, nil
}

func (d *di) WatchHandler(_ context.Context) http.Handler {
	if d.watchHandler == nil {
		d.watchHandler = health.NewRouter()
	}

	return d.watchHandler
}

func archiveConfig() archive.Config {
	cfg := config.C().Archive

	return archive.Config{
		Bucket:          cfg.Bucket(),
		Region:          cfg.Region(),
		Endpoint:        cfg.Endpoint(),
		AccessKeyID:     cfg.AccessKeyID(),
		SecretAccessKey: cfg.SecretAccessKey(),
		PathStyle:       cfg.PathStyle(),
		Prefix:          cfg.Prefix(),
	}
}
