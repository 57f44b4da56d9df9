package store

import (
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"fairway-app/internal/model"

	"github.com/google/uuid"
)

type scoreKey struct {
	scorecardID string
	userID      string
	holeID      string
}

type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]model.User
	tournaments map[string]model.Tournament
	courses     map[string]model.Course
	holes       map[string]model.Hole
	rounds      map[string]model.Round
	scorecards  map[string]model.Scorecard
	scores      map[scoreKey]model.HoleScore
	payouts     map[string]model.Payout
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:       make(map[string]model.User),
		tournaments: make(map[string]model.Tournament),
		courses:     make(map[string]model.Course),
		holes:       make(map[string]model.Hole),
		rounds:      make(map[string]model.Round),
		scorecards:  make(map[string]model.Scorecard),
		scores:      make(map[scoreKey]model.HoleScore),
		payouts:     make(map[string]model.Payout),
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName() < users[j].FullName() })
	return users
}

func (s *MemoryStore) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *MemoryStore) GetUserByUsername(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *MemoryStore) CreateUser(user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Username) == "" {
		return model.User{}, errors.New("username is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return model.User{}, errors.New("username already exists")
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) ListTournaments() []model.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tournaments := make([]model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt) })
	return tournaments
}

func (s *MemoryStore) GetTournament(id string) (model.Tournament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[id]
	return t, ok
}

func (s *MemoryStore) ActiveTournament() (model.Tournament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest model.Tournament
	found := false
	for _, t := range s.tournaments {
		if !t.IsActive {
			continue
		}
		if !found || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
			found = true
		}
	}
	return latest, found
}

func (s *MemoryStore) CreateTournament(tournament model.Tournament) (model.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tournament.ID == "" {
		tournament.ID = uuid.NewString()
	}
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = time.Now()
	}
	if tournament.Status == "" {
		tournament.Status = model.TournamentDraft
	}
	s.tournaments[tournament.ID] = tournament
	return tournament, nil
}

func (s *MemoryStore) UpdateTournamentStatus(id string, status model.TournamentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tournaments[id]
	if !ok {
		return errors.New("tournament not found")
	}
	t.Status = status
	t.IsActive = status != model.TournamentCompleted
	s.tournaments[id] = t
	return nil
}

func (s *MemoryStore) ListCourses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses
}

func (s *MemoryStore) GetCourse(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	return c, ok
}

func (s *MemoryStore) CreateCourse(course model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	s.courses[course.ID] = course
	return course, nil
}

func (s *MemoryStore) ListHolesByCourse(courseID string) []model.Hole {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holes := make([]model.Hole, 0, 18)
	for _, h := range s.holes {
		if h.CourseID == courseID {
			holes = append(holes, h)
		}
	}
	sort.Slice(holes, func(i, j int) bool { return holes[i].HoleNumber < holes[j].HoleNumber })
	return holes
}

func (s *MemoryStore) GetHole(id string) (model.Hole, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.holes[id]
	return h, ok
}

func (s *MemoryStore) CreateHole(hole model.Hole) (model.Hole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hole.ID == "" {
		hole.ID = uuid.NewString()
	}
	s.holes[hole.ID] = hole
	return hole, nil
}

func (s *MemoryStore) DeleteHole(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.holes[id]; !ok {
		return errors.New("hole not found")
	}
	delete(s.holes, id)
	return nil
}

func (s *MemoryStore) ListRoundsByTournament(tournamentID string) []model.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := make([]model.Round, 0)
	for _, r := range s.rounds {
		if r.TournamentID == tournamentID {
			rounds = append(rounds, r)
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].RoundNumber < rounds[j].RoundNumber })
	return rounds
}

func (s *MemoryStore) GetRound(id string) (model.Round, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rounds[id]
	return r, ok
}

func (s *MemoryStore) CreateRound(round model.Round) (model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	if round.Status == "" {
		round.Status = model.RoundPending
	}
	s.rounds[round.ID] = round
	return round, nil
}

func (s *MemoryStore) UpdateRoundStatus(id string, status model.RoundStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[id]
	if !ok {
		return errors.New("round not found")
	}
	r.Status = status
	s.rounds[id] = r
	return nil
}

func (s *MemoryStore) ListScorecardsByRound(roundID string) []model.Scorecard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]model.Scorecard, 0)
	for _, c := range s.scorecards {
		if c.RoundID == roundID {
			cards = append(cards, c)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })
	return cards
}

func (s *MemoryStore) GetScorecard(id string) (model.Scorecard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.scorecards[id]
	return c, ok
}

func (s *MemoryStore) CreateScorecard(card model.Scorecard) (model.Scorecard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	s.scorecards[card.ID] = card
	return card, nil
}

func (s *MemoryStore) AssignPlayersToScorecard(scorecardID string, userIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.scorecards[scorecardID]
	if !ok {
		return errors.New("scorecard not found")
	}
	for _, id := range userIDs {
		if !containsID(card.PlayerIDs, id) {
			card.PlayerIDs = append(card.PlayerIDs, id)
		}
	}
	s.scorecards[scorecardID] = card
	return nil
}

func (s *MemoryStore) ListScoresByScorecard(scorecardID string) []model.HoleScore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make([]model.HoleScore, 0)
	for _, sc := range s.scores {
		if sc.ScorecardID == scorecardID {
			scores = append(scores, sc)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		hi, _ := s.holes[scores[i].HoleID]
		hj, _ := s.holes[scores[j].HoleID]
		return hi.HoleNumber < hj.HoleNumber
	})
	return scores
}

func (s *MemoryStore) UpsertHoleScore(score model.HoleScore) (model.HoleScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scoreKey{score.ScorecardID, score.UserID, score.HoleID}
	if existing, ok := s.scores[key]; ok {
		existing.Strokes = score.Strokes
		existing.NetStrokes = score.NetStrokes
		s.scores[key] = existing
		return existing, nil
	}
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	s.scores[key] = score
	return score, nil
}

func (s *MemoryStore) SumNetStrokesByPlayer(scope model.LeaderboardScope) ([]model.PlayerTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inScope := func(card model.Scorecard) bool {
		if scope.RoundID != "" {
			return card.RoundID == scope.RoundID
		}
		round, ok := s.rounds[card.RoundID]
		return ok && round.TournamentID == scope.TournamentID
	}

	totals := make(map[string]*model.PlayerTotal)
	roundsSeen := make(map[string]map[string]bool)
	for _, sc := range s.scores {
		card, ok := s.scorecards[sc.ScorecardID]
		if !ok || !inScope(card) {
			continue
		}
		total, ok := totals[sc.UserID]
		if !ok {
			total = &model.PlayerTotal{UserID: sc.UserID}
			totals[sc.UserID] = total
			roundsSeen[sc.UserID] = make(map[string]bool)
		}
		total.TotalStrokes += sc.Strokes
		total.TotalNetStrokes += sc.NetStrokes
		roundsSeen[sc.UserID][card.RoundID] = true
	}

	result := make([]model.PlayerTotal, 0, len(totals))
	for userID, total := range totals {
		total.RoundsPlayed = len(roundsSeen[userID])
		result = append(result, *total)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TotalNetStrokes < result[j].TotalNetStrokes })
	return result, nil
}

func (s *MemoryStore) ListPayoutsByTournament(tournamentID string) []model.Payout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payouts := make([]model.Payout, 0)
	for _, p := range s.payouts {
		if p.TournamentID == tournamentID {
			payouts = append(payouts, p)
		}
	}
	sort.Slice(payouts, func(i, j int) bool { return payouts[i].Position < payouts[j].Position })
	return payouts
}

func (s *MemoryStore) CreatePayout(payout model.Payout) (model.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payout.ID == "" {
		payout.ID = uuid.NewString()
	}
	if payout.CreatedAt.IsZero() {
		payout.CreatedAt = time.Now()
	}
	s.payouts[payout.ID] = payout
	return payout, nil
}

func containsID(ids []string, needle string) bool {
	for _, id := range ids {
		if id == needle {
			return true
		}
	}
	return false
}
