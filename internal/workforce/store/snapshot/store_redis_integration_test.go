//go:build integration

package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cna/internal/workforce/models"
	"cna/internal/workforce/store/snapshot"
	"cna/pkg/platform/sentinel"
	"cna/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *snapshot.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = snapshot.NewRedisCache(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func testSnapshot() *models.AggregatedData {
	return &models.AggregatedData{
		TotalPositions:  10,
		OnStrength:      8,
		VacantPositions: 2,
		VacancyRate:     20,
		CNAParticipants: 6,
		BaselineScore:   6.4,
		GapSector:       models.PillarScore{Pillar: "Digital Literacy", Score: 4.1},
		PeakSector:      models.PillarScore{Pillar: "Technical Competence", Score: 8.2},
		DivisionStats: map[string]models.DivisionStats{
			"Policy": {Ceiling: 10, Actual: 8, FilledByCNA: 6, SkillGaps: 2},
		},
		Discrepancies: []models.Discrepancy{},
	}
}

func (s *RedisCacheSuite) TestSetAndGetRoundTrip() {
	ctx := context.Background()
	id := uuid.NewString()

	s.Require().NoError(s.cache.Set(ctx, id, testSnapshot()))

	got, err := s.cache.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(testSnapshot(), got)
}

func (s *RedisCacheSuite) TestGetMiss() {
	_, err := s.cache.Get(context.Background(), uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestCorruptEntryReadsAsMiss() {
	ctx := context.Background()
	id := uuid.NewString()
	s.Require().NoError(s.redis.Client.Set(ctx, "cna:snapshot:"+id, "not json", time.Minute).Err())

	_, err := s.cache.Get(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestInvalidate() {
	ctx := context.Background()
	id := uuid.NewString()
	s.Require().NoError(s.cache.Set(ctx, id, testSnapshot()))
	s.Require().NoError(s.cache.Invalidate(ctx, id))

	_, err := s.cache.Get(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Invalidating an absent key is not an error.
	s.NoError(s.cache.Invalidate(ctx, id))
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	short := snapshot.NewRedisCache(s.redis.Client, 50*time.Millisecond)
	id := uuid.NewString()
	s.Require().NoError(short.Set(ctx, id, testSnapshot()))

	time.Sleep(100 * time.Millisecond)

	_, err := short.Get(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
