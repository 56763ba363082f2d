//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/catchment-param-service/internal/adapter/cache"
	"github.com/couchcryptid/catchment-param-service/internal/adapter/kafka"
	"github.com/couchcryptid/catchment-param-service/internal/adapter/sqlite"
	"github.com/couchcryptid/catchment-param-service/internal/config"
	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/observability"
	"github.com/couchcryptid/catchment-param-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-requests"
	testSinkTopic   = "test-parameters"
)

// producedMessage holds a deserialized message read from the sink topic.
type producedMessage struct {
	Result  domain.Subcatchment
	Key     string
	Headers map[string]string
}

// readProduced reads a single message from the sink consumer and deserializes it.
func readProduced(ctx context.Context, t *testing.T, consumer *kafkago.Reader) producedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var sc domain.Subcatchment
	require.NoError(t, json.Unmarshal(msg.Value, &sc), "unmarshal sink message")

	return producedMessage{Result: sc, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 2 * time.Second,
	}
}

func newProducer(t *testing.T, broker string) *kafkago.Writer {
	t.Helper()
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func newTransformer(t *testing.T) *pipeline.CatchmentTransformer {
	t.Helper()
	calc, err := domain.NewDefaultCalculator()
	require.NoError(t, err)
	est, err := cache.NewCachedEstimator(calc, 256, nil)
	require.NoError(t, err)
	return pipeline.NewTransformer(est, discardLogger())
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader and
// kafka.Writer round-trip a request and its result through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	payload := []byte(`{"area_ha":16,"land_form":"higher_hills","land_cover":"arable"}`)
	require.NoError(t, newProducer(t, broker).WriteMessages(ctx, kafkago.Message{
		Key:   []byte("sc-hills"),
		Value: payload,
	}))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	batch, err := reader.ExtractBatch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("sc-hills"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	sc, err := newTransformer(t).Transform(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "sc-hills", sc.ID)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.Subcatchment{sc}))

	pm := readProduced(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, "sc-hills", pm.Key)
	assert.Equal(t, "mountains", pm.Headers["catchment_type"])
	_, err = time.Parse(time.RFC3339, pm.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	assert.Equal(t, domain.HigherHills, pm.Result.LandForm)
	assert.Equal(t, domain.Arable, pm.Result.LandCover)
	assert.InDelta(t, 200.0, pm.Result.Width, 1e-9)
}

// TestPipelineEndToEnd wires Reader, Transformer and a MultiLoader over the
// Kafka writer and a SQLite store, then publishes one request per category
// pair.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	var msgs []kafkago.Message
	for _, f := range domain.AllLandForms() {
		for _, c := range domain.AllLandCovers() {
			payload, err := json.Marshal(domain.SubcatchmentRequest{AreaHa: 10, LandForm: f, LandCover: c})
			require.NoError(t, err)
			msgs = append(msgs, kafkago.Message{
				Key:   []byte(fmt.Sprintf("pair-%d-%d", int(f), int(c))),
				Value: payload,
			})
		}
	}
	require.NoError(t, newProducer(t, broker).WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "results.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, newTransformer(t), pipeline.NewMultiLoader(writer, store), discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	received := make([]producedMessage, 0, len(msgs))
	for len(received) < len(msgs) {
		received = append(received, readProduced(ctx, t, consumer))
	}

	pipelineCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, p.CheckReadiness(ctx))

	typeCounts := map[string]int{}
	for _, pm := range received {
		typeCounts[pm.Result.CatchmentType]++
		assert.Equal(t, pm.Key, pm.Result.ID)
		assert.Equal(t, pm.Result.CatchmentType, pm.Headers["catchment_type"])
		_, err := time.Parse(time.RFC3339, pm.Headers["processed_at"])
		assert.NoError(t, err, "invalid processed_at format")
	}
	assert.Len(t, typeCounts, len(domain.CatchmentLabels), "every catchment type should appear")

	stored, err := store.Recent(ctx, len(msgs)+10)
	require.NoError(t, err)
	assert.Len(t, stored, len(msgs))

	got, err := store.Get(ctx, "pair-7-13")
	require.NoError(t, err)
	assert.Equal(t, "mountains", got.CatchmentType)
}

// TestPipelineTransformError verifies that invalid requests (poison pills) are
// skipped and the pipeline continues processing valid ones.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	require.NoError(t, newProducer(t, broker).WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad-json"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("bad-form"), Value: []byte(`{"area_ha":1,"land_form":"volcano","land_cover":"rural"}`)},
		kafkago.Message{Key: []byte("good"), Value: []byte(`{"area_ha":1,"land_form":"mountains","land_cover":"rural"}`)},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, newTransformer(t), writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	pm := readProduced(ctx, t, consumer)
	assert.Equal(t, "good", pm.Key)
	assert.Equal(t, "rural", pm.Result.CatchmentType)

	// No second message: both poison pills were skipped.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
