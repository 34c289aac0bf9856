package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitEventPublishing_EmptyBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	ep := initEventPublishing("", "", logger)

	if ep.Orders != nil || ep.Users != nil {
		t.Error("expected nil publishers without brokers")
	}

	// Close без producer не должен паниковать.
	ep.Close(logger)
}

func TestInitEventPublishing_InvalidBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	// Подключение не удастся, но сервис продолжает работу без Kafka.
	ep := initEventPublishing("invalid-broker:9999", "", logger)

	if ep.Orders != nil || ep.Users != nil {
		t.Error("expected nil publishers when producer cannot connect")
	}

	ep.Close(logger)
}

func TestInitEventPublishing_MultipleBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	ep := initEventPublishing("broker1:9092,broker2:9092,broker3:9092", "custom.topic", logger)

	if ep.Orders != nil || ep.Users != nil {
		t.Error("expected nil publishers when no broker is reachable")
	}
}

func TestEventPublishingClose_Nil(t *testing.T) {
	logger := log.WithField("test", "kafka")

	var ep *eventPublishing
	ep.Close(logger)
}
