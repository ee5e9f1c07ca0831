package messaging

import (
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWriterReusesPerTopic(t *testing.T) {
	kp := NewKafkaProducer([]string{"localhost:9092"})
	defer kp.Close()

	first := kp.getWriter("order_events")
	assert.Same(t, first, kp.getWriter("order_events"))
	assert.NotSame(t, first, kp.getWriter("order_tracking"))
}

func TestGetWriterConcurrentFirstUse(t *testing.T) {
	kp := NewKafkaProducer([]string{"localhost:9092"})
	defer kp.Close()

	const parallel = 8
	writers := make([]*kafka.Writer, parallel)

	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			writers[i] = kp.getWriter("order_events")
		}(i)
	}
	wg.Wait()

	for i := 1; i < parallel; i++ {
		require.Same(t, writers[0], writers[i])
	}
}
