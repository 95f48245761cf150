// Package notify реализует fan-out "что-то изменилось" для админского
// SSE-стрима. Реестр подписчиков живёт только в памяти процесса и не
// переживает рестарт; подписчики после рестарта переподключаются сами.
package notify

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/metrics"
)

// Буфер в один сигнал: подписчику достаточно узнать, что было обновление,
// коалесцирование подряд идущих сигналов допустимо.
const subscriberBuffer = 1

// Hub держит реестр открытых подписок и рассылает им сигнал обновления.
// Реестр передаётся явно (инъекцией), без пакетных глобалов; доступ защищён
// мьютексом, поскольку net/http обслуживает запросы параллельно.
type Hub struct {
	mu      sync.Mutex
	subs    map[uint64]chan struct{}
	nextID  uint64
	closed  bool
	logger  *log.Entry
	metrics *metrics.APIMetrics
}

// NewHub создаёт пустой hub. metrics может быть nil.
func NewHub(logger *log.Entry, m *metrics.APIMetrics) *Hub {
	if logger == nil {
		logger = log.New().WithField("component", "notify-hub")
	}
	return &Hub{
		subs:    make(map[uint64]chan struct{}),
		logger:  logger,
		metrics: m,
	}
}

// Subscribe регистрирует подписчика и возвращает канал сигналов вместе с
// функцией отписки. Отписка идемпотентна: повторный вызов — no-op.
func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, subscriberBuffer)
	if h.closed {
		// Hub уже остановлен: возвращаем закрытый канал, чтобы обработчик
		// стрима сразу завершился.
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.metrics.SubscriberConnected()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[id]; !ok {
				return
			}
			delete(h.subs, id)
			h.metrics.SubscriberDisconnected()
		})
	}

	return ch, unsubscribe
}

// Broadcast доставляет сигнал каждому зарегистрированному подписчику.
// Отправка неблокирующая: подписчик с полным буфером пропускает сигнал,
// остальные получают его независимо. Ошибок наружу нет.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
			h.metrics.RecordBroadcast()
		default:
			// Подписчик не успевает читать; в его буфере уже лежит
			// недоставленный сигнал, этого достаточно.
			h.metrics.RecordBroadcastDrop()
		}
	}

	h.logger.WithField("subscribers", len(h.subs)).Debug("update signal fanned out")
}

// Len возвращает количество активных подписчиков.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close закрывает все каналы подписчиков и запрещает новые подписки.
// Используется при остановке сервера, чтобы SSE-обработчики завершились.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		close(ch)
		delete(h.subs, id)
		h.metrics.SubscriberDisconnected()
	}
}
