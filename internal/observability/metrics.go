package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FilmsTotal tracks the number of films currently stored.
	FilmsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmorate_films_total",
		Help: "Number of films currently in the catalogue",
	})

	// UsersTotal tracks the number of users currently stored.
	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmorate_users_total",
		Help: "Number of registered users",
	})

	// LikeOperations counts like changes by action (add, remove).
	LikeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_likes_total",
		Help: "Total like operations by action",
	}, []string{"action"})

	// FriendshipOperations counts friendship changes by action (add, remove).
	FriendshipOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_friendships_total",
		Help: "Total friendship operations by action",
	}, []string{"action"})

	// CacheLookups counts cache-aside lookups by result (hit, miss, bypass).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_cache_lookups_total",
		Help: "Cache-aside lookups by result",
	}, []string{"result"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)
