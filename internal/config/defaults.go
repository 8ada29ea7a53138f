package config

import "time"

const (
	defaultPort      = 8080
	defaultPprofPort = 6060

	defaultKafkaTopic   = "courier-status-events"
	defaultKafkaGroupID = "courier-track-worker"

	defaultTokenTTL = 24 * time.Hour
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "courier_track",
}

var defaultLogin = Login{
	RateLimit:  5,
	RateWindow: time.Minute,
}

var defaultNav = Nav{
	Destination: "6.9271,79.8612",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultLogin returns the default login rate limit settings.
func DefaultLogin() Login {
	return defaultLogin
}

// DefaultNav returns the default navigation gateway settings.
func DefaultNav() Nav {
	return defaultNav
}
