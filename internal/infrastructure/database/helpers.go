package database

import (
	"time"

	"github.com/rs/zerolog/log"
)

// PoolStats là snapshot thống kê pool, trả về ở /health
type PoolStats struct {
	TotalConns    int32         `json:"total_connections"`
	IdleConns     int32         `json:"idle_connections"`
	AcquiredConns int32         `json:"acquired_connections"`
	MaxConns      int32         `json:"max_connections"`
	AvgAcquire    time.Duration `json:"avg_acquire_ns"`
}

// Stats trả về nil nếu pool chưa khởi tạo
func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return nil
	}
	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:    raw.TotalConns(),
		IdleConns:     raw.IdleConns(),
		AcquiredConns: raw.AcquiredConns(),
		MaxConns:      raw.MaxConns(),
		AvgAcquire:    calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}
}

func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}

// Close đóng pool, gọi nhiều lần vẫn an toàn
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	db.Pool.Close()
	db.Pool = nil
	log.Info().Msg("[DATABASE] Connection pool closed")
}
