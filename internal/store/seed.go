package store

import (
	"time"

	"fairway-app/internal/golf"
	"fairway-app/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// seedData loads a demo tournament into a fresh memory store so the app is
// usable without any setup. Guarded by the APP env check in NewMemoryStore
// and by an existing-records check, so calling it twice is a no-op.
func seedData(s *MemoryStore) {
	if len(s.users) > 0 || len(s.tournaments) > 0 {
		return
	}

	defaultHash := hashPassword("fairway123")
	now := time.Now()

	seedUsers := []model.User{
		{ID: uuid.NewString(), Username: "mwilson", Email: "mark.wilson@example.com", FirstName: "Mark", LastName: "Wilson", HandicapIndex: 12.5},
		{ID: uuid.NewString(), Username: "jhardy", Email: "jess.hardy@example.com", FirstName: "Jess", LastName: "Hardy", HandicapIndex: 4.2},
		{ID: uuid.NewString(), Username: "tpeters", Email: "tom.peters@example.com", FirstName: "Tom", LastName: "Peters", HandicapIndex: 22.8},
		{ID: uuid.NewString(), Username: "ncarver", Email: "nina.carver@example.com", FirstName: "Nina", LastName: "Carver", HandicapIndex: 9.0},
		{ID: uuid.NewString(), Username: "dbooth", Email: "dan.booth@example.com", FirstName: "Dan", LastName: "Booth", HandicapIndex: 17.3},
		{ID: uuid.NewString(), Username: "sreyes", Email: "sam.reyes@example.com", FirstName: "Sam", LastName: "Reyes", HandicapIndex: 30.1},
		{ID: uuid.NewString(), Username: "lfrost", Email: "lena.frost@example.com", FirstName: "Lena", LastName: "Frost", HandicapIndex: 0.8},
		{ID: uuid.NewString(), Username: "gmoss", Email: "gary.moss@example.com", FirstName: "Gary", LastName: "Moss", HandicapIndex: 14.6},
	}
	for i := range seedUsers {
		seedUsers[i].PasswordHash = defaultHash
		seedUsers[i].CreatedAt = now
		if seedUsers[i].Username == "mwilson" {
			seedUsers[i].IsAdmin = true
		}
		s.users[seedUsers[i].ID] = seedUsers[i]
	}

	course := model.Course{
		ID:           uuid.NewString(),
		Name:         "Heron Creek",
		Location:     "Ashford, OR",
		Par:          72,
		Yardage:      6480,
		SlopeRating:  128,
		CourseRating: 71.2,
		CreatedAt:    now,
	}
	s.courses[course.ID] = course

	// Stroke-index permutation for 18 holes; odd indexes on the front nine,
	// even on the back, the common committee layout.
	pars := []int{4, 5, 3, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 5, 3, 4, 4}
	rankings := []int{5, 11, 17, 1, 7, 15, 9, 3, 13, 6, 18, 10, 2, 8, 12, 16, 4, 14}
	yardages := []int{385, 520, 165, 430, 400, 150, 545, 415, 370, 390, 180, 510, 445, 380, 530, 140, 420, 405}
	for i := 0; i < 18; i++ {
		hole := model.Hole{
			ID:              uuid.NewString(),
			CourseID:        course.ID,
			HoleNumber:      i + 1,
			Par:             pars[i],
			Yardage:         yardages[i],
			HandicapRanking: rankings[i],
		}
		s.holes[hole.ID] = hole
	}

	tournament := model.Tournament{
		ID:           uuid.NewString(),
		Name:         "Heron Creek Invitational",
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 0, 2),
		DailyBuyIn:   20,
		OverallBuyIn: 50,
		Status:       model.TournamentInProgress,
		IsActive:     true,
		CreatedAt:    now,
	}
	s.tournaments[tournament.ID] = tournament

	round := model.Round{
		ID:           uuid.NewString(),
		TournamentID: tournament.ID,
		CourseID:     course.ID,
		RoundNumber:  1,
		Date:         now,
		Status:       model.RoundInProgress,
		CreatedAt:    now,
	}
	s.rounds[round.ID] = round

	cardNames := []string{"A", "B"}
	for i, name := range cardNames {
		card := model.Scorecard{
			ID:        uuid.NewString(),
			RoundID:   round.ID,
			Name:      name,
			CreatedAt: now,
		}
		for j := i * 4; j < (i+1)*4 && j < len(seedUsers); j++ {
			card.PlayerIDs = append(card.PlayerIDs, seedUsers[j].ID)
		}
		s.scorecards[card.ID] = card

		// Give the first group a played front nine so leaderboards are not
		// empty on first load.
		if i != 0 {
			continue
		}
		holes := make([]model.Hole, 0, 18)
		for _, h := range s.holes {
			holes = append(holes, h)
		}
		for _, userID := range card.PlayerIDs {
			user := s.users[userID]
			ch := golf.CourseHandicap(user.HandicapIndex, course.SlopeRating, course.CourseRating, course.Par)
			for _, h := range holes {
				if h.HoleNumber > 9 {
					continue
				}
				gross := h.Par + (ch+h.HoleNumber)%3
				received := golf.StrokesForHole(ch, h.HandicapRanking)
				key := scoreKey{card.ID, userID, h.ID}
				s.scores[key] = model.HoleScore{
					ID:          uuid.NewString(),
					ScorecardID: card.ID,
					UserID:      userID,
					HoleID:      h.ID,
					Strokes:     gross,
					NetStrokes:  golf.NetStrokes(gross, received),
					CreatedAt:   now,
				}
			}
		}
	}
}

func hashPassword(password string) string {
	if password == "" {
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}
