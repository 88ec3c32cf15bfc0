package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/markusressel/xu4fan/internal/status"
	"github.com/markusressel/xu4fan/internal/ui"
)

const (
	StateSuffix    = "/state"
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

// Payload is the retained message published after every cycle.
type Payload struct {
	Mean  float64   `json:"mean"`
	State string    `json:"state"`
	Time  time.Time `json:"time"`
}

// Publisher mirrors the controller state to an MQTT broker.
type Publisher struct {
	client MQTT.Client
	topic  string

	mu    sync.Mutex
	state string
}

// Connect creates a client for the given configuration and connects it.
func Connect(config configuration.MqttConfig) (*Publisher, error) {
	clientId := config.ClientId
	if len(clientId) <= 0 {
		clientId = "xu4fan_" + uuid.NewString()
	}

	opts := MQTT.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(clientId)
	opts.SetAutoReconnect(true)
	opts.SetWill(config.Topic+StateSuffix, "", 0, false)
	opts.OnConnect = func(client MQTT.Client) {
		ui.Info("Connected to MQTT broker %s", config.Broker)
	}
	opts.OnConnectionLost = func(client MQTT.Client, err error) {
		ui.Warning("MQTT connection lost: %v", err)
	}

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", config.Broker, token.Error())
	}

	return NewPublisher(client, config.Topic), nil
}

func NewPublisher(client MQTT.Client, topic string) *Publisher {
	return &Publisher{
		client: client,
		topic:  topic,
		state:  status.FanStateUnknown,
	}
}

func (p *Publisher) StateTopic() string {
	return p.topic + StateSuffix
}

func (p *Publisher) ObserveCycle(cycle controller.Cycle) error {
	payload := Payload{
		Mean:  cycle.Mean,
		State: p.nextState(cycle.Decision),
		Time:  cycle.Time,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.StateTopic(), 0, true, data)
	if !token.WaitTimeout(publishTimeout) {
		return errors.New("mqtt: publish timed out")
	}
	return token.Error()
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectWait)
	}
}

func (p *Publisher) nextState(decision control_loop.Decision) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch decision {
	case control_loop.DecisionOn:
		p.state = status.FanStateOn
	case control_loop.DecisionOff:
		p.state = status.FanStateOff
	}
	return p.state
}
