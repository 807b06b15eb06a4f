package config

import "fmt"

// Validate checks cross-field constraints cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns %d < database.min_conns %d",
			c.Database.MaxConns, c.Database.MinConns)
	}
	if len(c.Auth.APISecret) < 16 {
		return fmt.Errorf("auth.api_secret must be at least 16 characters")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters")
	}
	if c.Autopilot.FeedItemLimit <= 0 {
		return fmt.Errorf("autopilot.feed_item_limit must be positive")
	}
	if c.Autopilot.ActorPoolLimit <= 0 {
		return fmt.Errorf("autopilot.actor_pool_limit must be positive")
	}
	return nil
}
