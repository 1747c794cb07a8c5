//go:build integration

package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IBM/sarama"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	kafkaTc "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/Kevrnd/car-garage/internal/client/http/garage/fake"
	garageclient "github.com/Kevrnd/car-garage/internal/client/http/garage/v1"
	"github.com/Kevrnd/car-garage/internal/converter"
	"github.com/Kevrnd/car-garage/internal/model"
	chgconsumer "github.com/Kevrnd/car-garage/internal/service/consumer/change"
	"github.com/Kevrnd/car-garage/internal/service/garage"
	chgproducer "github.com/Kevrnd/car-garage/internal/service/producer/change"
	"github.com/Kevrnd/car-garage/platform/kafka/consumer"
	"github.com/Kevrnd/car-garage/platform/kafka/middleware"
	"github.com/Kevrnd/car-garage/platform/kafka/producer"
	"github.com/Kevrnd/car-garage/platform/logger"
)

const (
	kafkaImage   = "confluentinc/cp-kafka:7.6.1"
	topicChanges = "garage.changes"
	watchGroupID = "garage-watch-it"
)

var (
	itCtx        context.Context
	itCancel     context.CancelFunc
	kafkaC       tc.Container
	kafkaBrokers []string

	backend  *fake.Server
	carID    int64
	writer   *garage.Store
	watched  *garage.Store
	consumed chan error
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Garage Change Events Integration Suite")
}

var _ = BeforeSuite(func() {
	itCtx, itCancel = context.WithCancel(context.Background())
	logger.SetNopLogger()

	By("starting kafka container (cp-kafka)")
	var err error
	kafkaC, kafkaBrokers, err = runKafka(itCtx)
	Expect(err).NotTo(HaveOccurred())
	Expect(createTopics(kafkaBrokers, topicChanges)).To(Succeed())

	By("starting the fake garage backend")
	backend = fake.New()
	srv := httptest.NewServer(backend)
	DeferCleanup(srv.Close)
	carID = backend.AddCar("Lada", "Vesta", "XTA00000000000001")

	client, err := garageclient.NewClient(garageclient.Options{BaseURL: srv.URL, CSRFToken: "it-token"})
	Expect(err).NotTo(HaveOccurred())

	conv := converter.NewKafkaConverter()

	By("wiring the publishing store")
	prodCfg := sarama.NewConfig()
	prodCfg.Version = sarama.V4_0_0_0
	prodCfg.Producer.Return.Successes = true

	sp, err := sarama.NewSyncProducer(kafkaBrokers, prodCfg)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(sp.Close)

	publisher := chgproducer.NewChangeProducer(producer.NewProducer(sp, topicChanges, logger.L()), conv)
	writer = garage.NewStore(carID, client, publisher)

	By("starting the watch consumer")
	consCfg := sarama.NewConfig()
	consCfg.Version = sarama.V4_0_0_0
	consCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	consCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(kafkaBrokers, watchGroupID, consCfg)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(group.Close)

	watched = garage.NewStore(carID, client, chgproducer.NewNopPublisher())
	cons := consumer.NewConsumer(group, []string{topicChanges}, logger.L(),
		middleware.Recovery(logger.L()),
		middleware.Logging(logger.L()),
	)

	consumed = make(chan error, 1)
	go func() {
		consumed <- chgconsumer.NewChangeConsumer(cons, conv, watched).RunChangeConsume(itCtx)
	}()
	Consistently(consumed, 2*time.Second).ShouldNot(Receive())
})

var _ = AfterSuite(func() {
	if itCancel != nil {
		itCancel()
	}
	if kafkaC != nil {
		_ = kafkaC.Terminate(context.Background())
	}
})

var _ = Describe("change events", func() {
	It("keeps the watching store in step with mutations", func() {
		By("creating a repair through the publishing store")
		repair, err := writer.CreateRepair(itCtx, model.RepairInput{
			Date:            time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Mileage:         120000,
			WorkDescription: "Замена масла",
			WorkCost:        decimal.RequireFromString("1000"),
		})
		Expect(err).NotTo(HaveOccurred())

		By("adding a part to it")
		_, err = writer.CreatePart(itCtx, repair.ID, model.PartInput{
			Name: "Фильтр", PartCode: "F-1", Manufacturer: "Mann", Quantity: 2, Cost: decimal.RequireFromString("150"),
		})
		Expect(err).NotTo(HaveOccurred())

		By("waiting for the watching store to refresh")
		Eventually(func(g Gomega) {
			g.Expect(watched.Aggregates().TotalCost().StringFixed(2)).To(Equal("1300.00"))
		}).WithTimeout(20 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())
	})
})

func runKafka(ctx context.Context) (tc.Container, []string, error) {
	c, err := kafkaTc.Run(ctx,
		kafkaImage,
		kafkaTc.WithClusterID("Mk3OEYBSD34fcwNTJENDM2Qk"),
	)
	if err != nil {
		return nil, []string{}, err
	}

	bootstrap, err := c.Brokers(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, []string{}, err
	}

	return c, bootstrap, nil
}

func createTopics(brokers []string, topics ...string) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Admin.Timeout = 10 * time.Second

	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return err
	}
	defer admin.Close()

	for _, t := range topics {
		err := admin.CreateTopic(t, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false)
		if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return err
		}
	}
	return nil
}
