// Package amqppublisher delivers lending lifecycle events to a RabbitMQ
// topic exchange. The event kind doubles as the routing key, so consumers
// can bind selectively, for example only to loan_expired.
package amqppublisher
