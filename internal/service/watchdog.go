package service

import (
	"context"
	"time"

	"grinder_relay/internal/logger"
	"grinder_relay/internal/models"
	"grinder_relay/internal/repository"
)

// Alarms recorded on gateway liveness transitions.
const (
	offlineAlarmType     = "Gateway Offline"
	offlineAlarmMessage  = "No state received from gateway within liveness window"
	offlineAlarmSeverity = "medium"

	onlineAlarmType     = "Gateway Online"
	onlineAlarmMessage  = "Gateway state updates resumed"
	onlineAlarmSeverity = "low"
)

// WatchdogService watches the state cache and records liveness transitions
// as alarms, one per edge. It never marks the gateway offline before the
// first push.
type WatchdogService struct {
	cache     StateCache
	alarmRepo repository.AlarmRepo
	log       *logger.Logger
}

func NewWatchdogService(cache StateCache, alarmRepo repository.AlarmRepo, log *logger.Logger) *WatchdogService {
	return &WatchdogService{cache: cache, alarmRepo: alarmRepo, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *WatchdogService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	wasConnected := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			snap := s.cache.Read()
			if snap.ReceivedAt == nil {
				// gateway has never reported; nothing to watch yet
				continue
			}
			switch {
			case wasConnected && !snap.Connected:
				s.record(ctx, models.Alarm{
					Type:     offlineAlarmType,
					Message:  offlineAlarmMessage,
					Severity: offlineAlarmSeverity,
				})
			case !wasConnected && snap.Connected:
				s.record(ctx, models.Alarm{
					Type:     onlineAlarmType,
					Message:  onlineAlarmMessage,
					Severity: onlineAlarmSeverity,
				})
			}
			wasConnected = snap.Connected
		}
	}
}

func (s *WatchdogService) record(ctx context.Context, alarm models.Alarm) {
	if _, err := s.alarmRepo.Append(ctx, alarm); err != nil && s.log != nil {
		s.log.Errorw("failed to record liveness alarm", "type", alarm.Type, "err", err)
	}
}
