package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Predefinied Queue IDs of the books change feed.
const (
	CreateQueue = "bookshelf:creation"
	UpdateQueue = "bookshelf:updating"
	DeleteQueue = "bookshelf:deletion"
)

var (
	_ Queuer = (*redisQueue)(nil) // ensure *redisQueue implements Queuer.
	_ Queuer = (*nopQueue)(nil)   // ensure *nopQueue implements Queuer.
)

// Queuer describes a queue.
type Queuer interface {
	Push(ctx context.Context, qid string, book Book) error
	Pop(ctx context.Context, qids ...string) (string, Book, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
}

// GetRedisClient provides a redis client whose connection has been checked.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		client.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

func NewRedisQueue(client *redis.Client) Queuer {
	return &redisQueue{client: client}
}

// Push enqueues a book onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, qid, bookBytes).Err()
}

// Pop returns the first dequeued book from the list of queue ids.
// It blocks until a book is available or the context is done.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, Book, error) {
	var book Book
	var qid string
	infos, err := q.client.BLPop(ctx, 0*time.Second, qids...).Result()
	if err != nil {
		return qid, book, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &book); err != nil {
		return qid, book, err
	}
	qid = infos[0]
	return qid, book, nil
}

// nopQueue is used when the change feed is disabled.
type nopQueue struct{}

func NewNopQueue() Queuer {
	return &nopQueue{}
}

// Push drops the book.
func (q *nopQueue) Push(context.Context, string, Book) error {
	return nil
}

// Pop never delivers. It returns once the context is done.
func (q *nopQueue) Pop(ctx context.Context, _ ...string) (string, Book, error) {
	<-ctx.Done()
	return "", Book{}, ctx.Err()
}
