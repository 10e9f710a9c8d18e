package mqtt

import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// Client is a thin publisher-side wrapper around the paho client with
// auto-reconnect enabled.
type Client struct {
	client mqtt.Client
	config *Config
}

func NewClient(config *Config) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Println("mqtt client connected")
	})

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("mqtt connection lost: %v", err)
	})

	return &Client{
		client: mqtt.NewClient(opts),
		config: config,
	}
}

// Connect establishes a connection to the MQTT broker.
func (c *Client) Connect() error {
	token := c.client.Connect()
	token.Wait()

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return nil
}

// Publish publishes a message to a topic.
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	token.Wait()
	return token.Error()
}

// Disconnect disconnects from the MQTT broker.
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
}

// IsConnected returns connection status.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}
