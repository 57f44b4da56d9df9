package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fairway-app/internal/model"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY first_name, last_name`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanPGUserRow(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func (s *PostgresStore) GetUser(id string) (model.User, bool) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = $1`, id)
	u, err := scanPGUserRow(row)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) GetUserByUsername(username string) (model.User, bool) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE lower(username) = lower($1) LIMIT 1`, username)
	u, err := scanPGUserRow(row)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) CreateUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Username) == "" {
		return model.User{}, errors.New("username is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO users (`+userCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.HandicapIndex, user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, errors.New("username already exists")
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *PostgresStore) ListTournaments() []model.Tournament {
	rows, err := s.db.Query(`SELECT ` + tournamentCols + ` FROM tournaments ORDER BY created_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	tournaments := []model.Tournament{}
	for rows.Next() {
		t, err := scanPGTournamentRow(rows)
		if err != nil {
			continue
		}
		tournaments = append(tournaments, t)
	}
	return tournaments
}

func (s *PostgresStore) GetTournament(id string) (model.Tournament, bool) {
	row := s.db.QueryRow(`SELECT `+tournamentCols+` FROM tournaments WHERE id = $1`, id)
	t, err := scanPGTournamentRow(row)
	if err != nil {
		return model.Tournament{}, false
	}
	return t, true
}

func (s *PostgresStore) ActiveTournament() (model.Tournament, bool) {
	row := s.db.QueryRow(`SELECT ` + tournamentCols + ` FROM tournaments WHERE is_active ORDER BY created_at DESC LIMIT 1`)
	t, err := scanPGTournamentRow(row)
	if err != nil {
		return model.Tournament{}, false
	}
	return t, true
}

func (s *PostgresStore) CreateTournament(tournament model.Tournament) (model.Tournament, error) {
	if tournament.ID == "" {
		tournament.ID = uuid.NewString()
	}
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = time.Now()
	}
	if tournament.Status == "" {
		tournament.Status = model.TournamentDraft
	}
	_, err := s.db.Exec(`INSERT INTO tournaments (`+tournamentCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		tournament.ID, tournament.Name, tournament.StartDate, tournament.EndDate,
		tournament.DailyBuyIn, tournament.OverallBuyIn, string(tournament.Status), tournament.IsActive, tournament.CreatedAt,
	)
	if err != nil {
		return model.Tournament{}, err
	}
	return tournament, nil
}

func (s *PostgresStore) UpdateTournamentStatus(id string, status model.TournamentStatus) error {
	res, err := s.db.Exec(`UPDATE tournaments SET status = $1, is_active = $2 WHERE id = $3`,
		string(status), status != model.TournamentCompleted, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("tournament not found")
	}
	return nil
}

func (s *PostgresStore) ListCourses() []model.Course {
	rows, err := s.db.Query(`SELECT ` + courseCols + ` FROM courses ORDER BY name`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanPGCourseRow(rows)
		if err != nil {
			continue
		}
		courses = append(courses, c)
	}
	return courses
}

func (s *PostgresStore) GetCourse(id string) (model.Course, bool) {
	row := s.db.QueryRow(`SELECT `+courseCols+` FROM courses WHERE id = $1`, id)
	c, err := scanPGCourseRow(row)
	if err != nil {
		return model.Course{}, false
	}
	return c, true
}

func (s *PostgresStore) CreateCourse(course model.Course) (model.Course, error) {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO courses (`+courseCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		course.ID, course.Name, course.Location, course.Par, course.Yardage, course.SlopeRating, course.CourseRating, course.CreatedAt,
	)
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

func (s *PostgresStore) ListHolesByCourse(courseID string) []model.Hole {
	rows, err := s.db.Query(`SELECT `+holeCols+` FROM holes WHERE course_id = $1 ORDER BY hole_number`, courseID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	holes := []model.Hole{}
	for rows.Next() {
		var h model.Hole
		if err := rows.Scan(&h.ID, &h.CourseID, &h.HoleNumber, &h.Par, &h.Yardage, &h.HandicapRanking); err != nil {
			continue
		}
		holes = append(holes, h)
	}
	return holes
}

func (s *PostgresStore) GetHole(id string) (model.Hole, bool) {
	var h model.Hole
	err := s.db.QueryRow(`SELECT `+holeCols+` FROM holes WHERE id = $1`, id).
		Scan(&h.ID, &h.CourseID, &h.HoleNumber, &h.Par, &h.Yardage, &h.HandicapRanking)
	if err != nil {
		return model.Hole{}, false
	}
	return h, true
}

func (s *PostgresStore) CreateHole(hole model.Hole) (model.Hole, error) {
	if hole.ID == "" {
		hole.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO holes (`+holeCols+`) VALUES ($1,$2,$3,$4,$5,$6)`,
		hole.ID, hole.CourseID, hole.HoleNumber, hole.Par, hole.Yardage, hole.HandicapRanking,
	)
	if err != nil {
		return model.Hole{}, err
	}
	return hole, nil
}

func (s *PostgresStore) DeleteHole(id string) error {
	res, err := s.db.Exec(`DELETE FROM holes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("hole not found")
	}
	return nil
}

func (s *PostgresStore) ListRoundsByTournament(tournamentID string) []model.Round {
	rows, err := s.db.Query(`SELECT `+roundCols+` FROM rounds WHERE tournament_id = $1 ORDER BY round_number`, tournamentID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	rounds := []model.Round{}
	for rows.Next() {
		r, err := scanPGRoundRow(rows)
		if err != nil {
			continue
		}
		rounds = append(rounds, r)
	}
	return rounds
}

func (s *PostgresStore) GetRound(id string) (model.Round, bool) {
	row := s.db.QueryRow(`SELECT `+roundCols+` FROM rounds WHERE id = $1`, id)
	r, err := scanPGRoundRow(row)
	if err != nil {
		return model.Round{}, false
	}
	return r, true
}

func (s *PostgresStore) CreateRound(round model.Round) (model.Round, error) {
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	if round.Status == "" {
		round.Status = model.RoundPending
	}
	_, err := s.db.Exec(`INSERT INTO rounds (`+roundCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		round.ID, round.TournamentID, round.CourseID, round.RoundNumber, round.Date, string(round.Status), round.CreatedAt,
	)
	if err != nil {
		return model.Round{}, err
	}
	return round, nil
}

func (s *PostgresStore) UpdateRoundStatus(id string, status model.RoundStatus) error {
	res, err := s.db.Exec(`UPDATE rounds SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("round not found")
	}
	return nil
}

func (s *PostgresStore) ListScorecardsByRound(roundID string) []model.Scorecard {
	rows, err := s.db.Query(`SELECT `+scorecardCols+` FROM scorecards WHERE round_id = $1 ORDER BY name`, roundID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	cards := []model.Scorecard{}
	for rows.Next() {
		c, err := scanPGScorecardRow(rows)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

func (s *PostgresStore) GetScorecard(id string) (model.Scorecard, bool) {
	row := s.db.QueryRow(`SELECT `+scorecardCols+` FROM scorecards WHERE id = $1`, id)
	c, err := scanPGScorecardRow(row)
	if err != nil {
		return model.Scorecard{}, false
	}
	return c, true
}

func (s *PostgresStore) CreateScorecard(card model.Scorecard) (model.Scorecard, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	playersJSON := string(toJSON(card.PlayerIDs))
	_, err := s.db.Exec(`INSERT INTO scorecards (`+scorecardCols+`) VALUES ($1,$2,$3,$4,$5)`,
		card.ID, card.RoundID, card.Name, playersJSON, card.CreatedAt,
	)
	if err != nil {
		return model.Scorecard{}, err
	}
	return card, nil
}

func (s *PostgresStore) AssignPlayersToScorecard(scorecardID string, userIDs []string) error {
	card, ok := s.GetScorecard(scorecardID)
	if !ok {
		return errors.New("scorecard not found")
	}
	for _, id := range userIDs {
		if !containsID(card.PlayerIDs, id) {
			card.PlayerIDs = append(card.PlayerIDs, id)
		}
	}
	playersJSON := string(toJSON(card.PlayerIDs))
	_, err := s.db.Exec(`UPDATE scorecards SET player_ids = $1 WHERE id = $2`, playersJSON, scorecardID)
	return err
}

func (s *PostgresStore) ListScoresByScorecard(scorecardID string) []model.HoleScore {
	rows, err := s.db.Query(`SELECT s.id, s.scorecard_id, s.user_id, s.hole_id, s.strokes, s.net_strokes, s.created_at
FROM scores s
JOIN holes h ON h.id = s.hole_id
WHERE s.scorecard_id = $1
ORDER BY h.hole_number`, scorecardID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	scores := []model.HoleScore{}
	for rows.Next() {
		sc, err := scanPGScoreRow(rows)
		if err != nil {
			continue
		}
		scores = append(scores, sc)
	}
	return scores
}

func (s *PostgresStore) UpsertHoleScore(score model.HoleScore) (model.HoleScore, error) {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	row := s.db.QueryRow(`INSERT INTO scores (`+scoreCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (scorecard_id, user_id, hole_id) DO UPDATE SET strokes = EXCLUDED.strokes, net_strokes = EXCLUDED.net_strokes
RETURNING `+scoreCols,
		score.ID, score.ScorecardID, score.UserID, score.HoleID, score.Strokes, score.NetStrokes, score.CreatedAt,
	)
	return scanPGScoreRow(row)
}

func (s *PostgresStore) SumNetStrokesByPlayer(scope model.LeaderboardScope) ([]model.PlayerTotal, error) {
	var rows *sql.Rows
	var err error
	if scope.RoundID != "" {
		rows, err = s.db.Query(`SELECT s.user_id, SUM(s.strokes), SUM(s.net_strokes), COUNT(DISTINCT c.round_id)
FROM scores s
JOIN scorecards c ON c.id = s.scorecard_id
WHERE c.round_id = $1
GROUP BY s.user_id
ORDER BY SUM(s.net_strokes)`, scope.RoundID)
	} else {
		rows, err = s.db.Query(`SELECT s.user_id, SUM(s.strokes), SUM(s.net_strokes), COUNT(DISTINCT r.id)
FROM scores s
JOIN scorecards c ON c.id = s.scorecard_id
JOIN rounds r ON r.id = c.round_id
WHERE r.tournament_id = $1
GROUP BY s.user_id
ORDER BY SUM(s.net_strokes)`, scope.TournamentID)
	}
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}
	defer rows.Close()

	totals := []model.PlayerTotal{}
	for rows.Next() {
		var t model.PlayerTotal
		if err := rows.Scan(&t.UserID, &t.TotalStrokes, &t.TotalNetStrokes, &t.RoundsPlayed); err != nil {
			return nil, fmt.Errorf("scan score totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *PostgresStore) ListPayoutsByTournament(tournamentID string) []model.Payout {
	rows, err := s.db.Query(`SELECT `+payoutCols+` FROM payouts WHERE tournament_id = $1 ORDER BY position`, tournamentID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	payouts := []model.Payout{}
	for rows.Next() {
		p, err := scanPGPayoutRow(rows)
		if err != nil {
			continue
		}
		payouts = append(payouts, p)
	}
	return payouts
}

func (s *PostgresStore) CreatePayout(payout model.Payout) (model.Payout, error) {
	if payout.ID == "" {
		payout.ID = uuid.NewString()
	}
	if payout.CreatedAt.IsZero() {
		payout.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO payouts (`+payoutCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		payout.ID, payout.TournamentID, payout.UserID, nullString(payout.RoundID), payout.Amount, string(payout.Type), payout.Position, payout.CreatedAt,
	)
	if err != nil {
		return model.Payout{}, err
	}
	return payout, nil
}

func scanPGUserRow(scanner rowScanner) (model.User, error) {
	var u model.User
	var createdAt sql.NullTime
	if err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.HandicapIndex, &u.IsAdmin, &createdAt); err != nil {
		return model.User{}, err
	}
	u.CreatedAt = createdAt.Time
	return u, nil
}

func scanPGTournamentRow(scanner rowScanner) (model.Tournament, error) {
	var t model.Tournament
	var status string
	var startDate, endDate, createdAt sql.NullTime
	if err := scanner.Scan(&t.ID, &t.Name, &startDate, &endDate, &t.DailyBuyIn, &t.OverallBuyIn, &status, &t.IsActive, &createdAt); err != nil {
		return model.Tournament{}, err
	}
	t.Status = model.TournamentStatus(status)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.CreatedAt = createdAt.Time
	return t, nil
}

func scanPGCourseRow(scanner rowScanner) (model.Course, error) {
	var c model.Course
	var createdAt sql.NullTime
	if err := scanner.Scan(&c.ID, &c.Name, &c.Location, &c.Par, &c.Yardage, &c.SlopeRating, &c.CourseRating, &createdAt); err != nil {
		return model.Course{}, err
	}
	c.CreatedAt = createdAt.Time
	return c, nil
}

func scanPGRoundRow(scanner rowScanner) (model.Round, error) {
	var r model.Round
	var status string
	var date, createdAt sql.NullTime
	if err := scanner.Scan(&r.ID, &r.TournamentID, &r.CourseID, &r.RoundNumber, &date, &status, &createdAt); err != nil {
		return model.Round{}, err
	}
	r.Status = model.RoundStatus(status)
	r.Date = date.Time
	r.CreatedAt = createdAt.Time
	return r, nil
}

func scanPGScorecardRow(scanner rowScanner) (model.Scorecard, error) {
	var c model.Scorecard
	var playersJSON sql.NullString
	var createdAt sql.NullTime
	if err := scanner.Scan(&c.ID, &c.RoundID, &c.Name, &playersJSON, &createdAt); err != nil {
		return model.Scorecard{}, err
	}
	c.CreatedAt = createdAt.Time
	if playersJSON.Valid && strings.TrimSpace(playersJSON.String) != "" {
		_ = json.Unmarshal([]byte(playersJSON.String), &c.PlayerIDs)
	}
	return c, nil
}

func scanPGScoreRow(scanner rowScanner) (model.HoleScore, error) {
	var sc model.HoleScore
	var createdAt sql.NullTime
	if err := scanner.Scan(&sc.ID, &sc.ScorecardID, &sc.UserID, &sc.HoleID, &sc.Strokes, &sc.NetStrokes, &createdAt); err != nil {
		return model.HoleScore{}, err
	}
	sc.CreatedAt = createdAt.Time
	return sc, nil
}

func scanPGPayoutRow(scanner rowScanner) (model.Payout, error) {
	var p model.Payout
	var payoutType string
	var roundID sql.NullString
	var createdAt sql.NullTime
	if err := scanner.Scan(&p.ID, &p.TournamentID, &p.UserID, &roundID, &p.Amount, &payoutType, &p.Position, &createdAt); err != nil {
		return model.Payout{}, err
	}
	p.Type = model.PayoutType(payoutType)
	if roundID.Valid {
		p.RoundID = roundID.String
	}
	p.CreatedAt = createdAt.Time
	return p, nil
}
