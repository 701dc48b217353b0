package amqp

type Option func(*option)

func WithDsn(s string) Option {
	return func(o *option) {
		o.dsn = s
	}
}

func WithExchangeDeclare(es ...ExchangeOption) Option {
	return func(o *option) {
		o.exchanges = append(o.exchanges, es...)
	}
}

func WithQueueDeclare(qs ...QueueOption) Option {
	return func(o *option) {
		o.queues = append(o.queues, qs...)
	}
}

// WithPersistent 消息持久化
func WithPersistent(b bool) Option {
	return func(o *option) {
		o.persistent = b
	}
}

type option struct {
	dsn string
	// 需要声明的交换机
	exchanges  []ExchangeOption
	queues     []QueueOption
	persistent bool
	dial       dialer
}

func defaultOption() *option {
	return &option{
		exchanges: make([]ExchangeOption, 0),
		queues:    make([]QueueOption, 0),
		dial:      dial,
	}
}

func (o *option) apply(ch session) error {
	if err := exchangeDeclare(ch, o.exchanges...); err != nil {
		return err
	}
	return queueDeclare(ch, o.queues...)
}

// ExchangeOption 交换机信息
type ExchangeOption struct {
	// 交换机名称
	Name string
	// 交换机类型 如 fanout direct topic
	Kind string
	// Durable 持久化
	Durable bool
	// AutoDelete设置为 true 表示自动删除 慎用 不是自动删除交换机。
	AutoDelete bool
}

// QueueOption 声明队列配置
type QueueOption struct {
	Queue      string
	Durable    bool
	AutoDelete bool
	// 如果配置则自动进行交换机绑定
	BindExchange []QueueBind
}

type QueueBind struct {
	Exchange   string
	RoutingKey string
}
