package redissvc

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/listing-tracker/internal/syncer"
)

const (
	// CycleReportKey holds the most recent cycle reports, newest last.
	CycleReportKey = "sync:reports:recent"
	cycleReportCap = 50
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{rdb: rdb, ctx: ctx}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

// LogCycleReport appends a cycle summary to the capped report list. Report
// logging is best effort; a Redis failure never affects the cycle itself.
func (s *RedisService) LogCycleReport(report syncer.CycleReport) {
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("failed to marshal cycle report %s: %v", report.ID, err)
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(s.ctx, CycleReportKey, data)
	pipe.LTrim(s.ctx, CycleReportKey, -cycleReportCap, -1)
	if _, err := pipe.Exec(s.ctx); err != nil {
		log.Printf("failed to store cycle report %s: %v", report.ID, err)
	}
}

// RecentReports returns up to n of the latest cycle reports, newest first.
func (s *RedisService) RecentReports(n int) ([]syncer.CycleReport, error) {
	if n <= 0 || n > cycleReportCap {
		n = cycleReportCap
	}
	raw, err := s.rdb.LRange(s.ctx, CycleReportKey, int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	reports := make([]syncer.CycleReport, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var rep syncer.CycleReport
		if err := json.Unmarshal([]byte(raw[i]), &rep); err != nil {
			log.Printf("skipping malformed cycle report entry: %v", err)
			continue
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
