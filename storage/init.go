package storage

import (
	"TripPlanner/storage/mq"
	"TripPlanner/storage/redis"
)

// Init brings up all shared infrastructure connections.
func Init() error {
	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
