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
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/sqlite"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

const userCols = `id, username, email, password_hash, first_name, last_name, handicap_index, is_admin, created_at`

func (s *SQLiteStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY first_name, last_name`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func (s *SQLiteStore) GetUser(id string) (model.User, bool) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUserRow(row)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) GetUserByUsername(username string) (model.User, bool) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE lower(username) = lower(?) LIMIT 1`, username)
	u, err := scanUserRow(row)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) CreateUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Username) == "" {
		return model.User{}, errors.New("username is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO users (`+userCols+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.HandicapIndex, user.IsAdmin, timeValue(user.CreatedAt),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, errors.New("username already exists")
		}
		return model.User{}, err
	}
	return user, nil
}

const tournamentCols = `id, name, start_date, end_date, daily_buy_in, overall_buy_in, status, is_active, created_at`

func (s *SQLiteStore) ListTournaments() []model.Tournament {
	rows, err := s.db.Query(`SELECT ` + tournamentCols + ` FROM tournaments ORDER BY created_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	tournaments := []model.Tournament{}
	for rows.Next() {
		t, err := scanTournamentRow(rows)
		if err != nil {
			continue
		}
		tournaments = append(tournaments, t)
	}
	return tournaments
}

func (s *SQLiteStore) GetTournament(id string) (model.Tournament, bool) {
	row := s.db.QueryRow(`SELECT `+tournamentCols+` FROM tournaments WHERE id = ?`, id)
	t, err := scanTournamentRow(row)
	if err != nil {
		return model.Tournament{}, false
	}
	return t, true
}

func (s *SQLiteStore) ActiveTournament() (model.Tournament, bool) {
	row := s.db.QueryRow(`SELECT ` + tournamentCols + ` FROM tournaments WHERE is_active ORDER BY created_at DESC LIMIT 1`)
	t, err := scanTournamentRow(row)
	if err != nil {
		return model.Tournament{}, false
	}
	return t, true
}

func (s *SQLiteStore) CreateTournament(tournament model.Tournament) (model.Tournament, error) {
	if tournament.ID == "" {
		tournament.ID = uuid.NewString()
	}
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = time.Now()
	}
	if tournament.Status == "" {
		tournament.Status = model.TournamentDraft
	}
	_, err := s.db.Exec(`INSERT INTO tournaments (`+tournamentCols+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		tournament.ID, tournament.Name, timeValue(tournament.StartDate), timeValue(tournament.EndDate),
		tournament.DailyBuyIn, tournament.OverallBuyIn, string(tournament.Status), tournament.IsActive, timeValue(tournament.CreatedAt),
	)
	if err != nil {
		return model.Tournament{}, err
	}
	return tournament, nil
}

func (s *SQLiteStore) UpdateTournamentStatus(id string, status model.TournamentStatus) error {
	res, err := s.db.Exec(`UPDATE tournaments SET status = ?, is_active = ? WHERE id = ?`,
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

const courseCols = `id, name, location, par, yardage, slope_rating, course_rating, created_at`

func (s *SQLiteStore) ListCourses() []model.Course {
	rows, err := s.db.Query(`SELECT ` + courseCols + ` FROM courses ORDER BY name`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourseRow(rows)
		if err != nil {
			continue
		}
		courses = append(courses, c)
	}
	return courses
}

func (s *SQLiteStore) GetCourse(id string) (model.Course, bool) {
	row := s.db.QueryRow(`SELECT `+courseCols+` FROM courses WHERE id = ?`, id)
	c, err := scanCourseRow(row)
	if err != nil {
		return model.Course{}, false
	}
	return c, true
}

func (s *SQLiteStore) CreateCourse(course model.Course) (model.Course, error) {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO courses (`+courseCols+`) VALUES (?,?,?,?,?,?,?,?)`,
		course.ID, course.Name, course.Location, course.Par, course.Yardage, course.SlopeRating, course.CourseRating, timeValue(course.CreatedAt),
	)
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

const holeCols = `id, course_id, hole_number, par, yardage, handicap_ranking`

func (s *SQLiteStore) ListHolesByCourse(courseID string) []model.Hole {
	rows, err := s.db.Query(`SELECT `+holeCols+` FROM holes WHERE course_id = ? ORDER BY hole_number`, courseID)
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

func (s *SQLiteStore) GetHole(id string) (model.Hole, bool) {
	var h model.Hole
	err := s.db.QueryRow(`SELECT `+holeCols+` FROM holes WHERE id = ?`, id).
		Scan(&h.ID, &h.CourseID, &h.HoleNumber, &h.Par, &h.Yardage, &h.HandicapRanking)
	if err != nil {
		return model.Hole{}, false
	}
	return h, true
}

func (s *SQLiteStore) CreateHole(hole model.Hole) (model.Hole, error) {
	if hole.ID == "" {
		hole.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO holes (`+holeCols+`) VALUES (?,?,?,?,?,?)`,
		hole.ID, hole.CourseID, hole.HoleNumber, hole.Par, hole.Yardage, hole.HandicapRanking,
	)
	if err != nil {
		return model.Hole{}, err
	}
	return hole, nil
}

func (s *SQLiteStore) DeleteHole(id string) error {
	res, err := s.db.Exec(`DELETE FROM holes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("hole not found")
	}
	return nil
}

const roundCols = `id, tournament_id, course_id, round_number, date, status, created_at`

func (s *SQLiteStore) ListRoundsByTournament(tournamentID string) []model.Round {
	rows, err := s.db.Query(`SELECT `+roundCols+` FROM rounds WHERE tournament_id = ? ORDER BY round_number`, tournamentID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	rounds := []model.Round{}
	for rows.Next() {
		r, err := scanRoundRow(rows)
		if err != nil {
			continue
		}
		rounds = append(rounds, r)
	}
	return rounds
}

func (s *SQLiteStore) GetRound(id string) (model.Round, bool) {
	row := s.db.QueryRow(`SELECT `+roundCols+` FROM rounds WHERE id = ?`, id)
	r, err := scanRoundRow(row)
	if err != nil {
		return model.Round{}, false
	}
	return r, true
}

func (s *SQLiteStore) CreateRound(round model.Round) (model.Round, error) {
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	if round.Status == "" {
		round.Status = model.RoundPending
	}
	_, err := s.db.Exec(`INSERT INTO rounds (`+roundCols+`) VALUES (?,?,?,?,?,?,?)`,
		round.ID, round.TournamentID, round.CourseID, round.RoundNumber, timeValue(round.Date), string(round.Status), timeValue(round.CreatedAt),
	)
	if err != nil {
		return model.Round{}, err
	}
	return round, nil
}

func (s *SQLiteStore) UpdateRoundStatus(id string, status model.RoundStatus) error {
	res, err := s.db.Exec(`UPDATE rounds SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("round not found")
	}
	return nil
}

const scorecardCols = `id, round_id, name, player_ids, created_at`

func (s *SQLiteStore) ListScorecardsByRound(roundID string) []model.Scorecard {
	rows, err := s.db.Query(`SELECT `+scorecardCols+` FROM scorecards WHERE round_id = ? ORDER BY name`, roundID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	cards := []model.Scorecard{}
	for rows.Next() {
		c, err := scanScorecardRow(rows)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

func (s *SQLiteStore) GetScorecard(id string) (model.Scorecard, bool) {
	row := s.db.QueryRow(`SELECT `+scorecardCols+` FROM scorecards WHERE id = ?`, id)
	c, err := scanScorecardRow(row)
	if err != nil {
		return model.Scorecard{}, false
	}
	return c, true
}

func (s *SQLiteStore) CreateScorecard(card model.Scorecard) (model.Scorecard, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	playersJSON := string(toJSON(card.PlayerIDs))
	_, err := s.db.Exec(`INSERT INTO scorecards (`+scorecardCols+`) VALUES (?,?,?,?,?)`,
		card.ID, card.RoundID, card.Name, playersJSON, timeValue(card.CreatedAt),
	)
	if err != nil {
		return model.Scorecard{}, err
	}
	return card, nil
}

func (s *SQLiteStore) AssignPlayersToScorecard(scorecardID string, userIDs []string) error {
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
	_, err := s.db.Exec(`UPDATE scorecards SET player_ids = ? WHERE id = ?`, playersJSON, scorecardID)
	return err
}

const scoreCols = `id, scorecard_id, user_id, hole_id, strokes, net_strokes, created_at`

func (s *SQLiteStore) ListScoresByScorecard(scorecardID string) []model.HoleScore {
	rows, err := s.db.Query(`SELECT s.id, s.scorecard_id, s.user_id, s.hole_id, s.strokes, s.net_strokes, s.created_at
FROM scores s
JOIN holes h ON h.id = s.hole_id
WHERE s.scorecard_id = ?
ORDER BY h.hole_number`, scorecardID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	scores := []model.HoleScore{}
	for rows.Next() {
		sc, err := scanScoreRow(rows)
		if err != nil {
			continue
		}
		scores = append(scores, sc)
	}
	return scores
}

func (s *SQLiteStore) UpsertHoleScore(score model.HoleScore) (model.HoleScore, error) {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO scores (`+scoreCols+`) VALUES (?,?,?,?,?,?,?)
ON CONFLICT (scorecard_id, user_id, hole_id) DO UPDATE SET strokes = excluded.strokes, net_strokes = excluded.net_strokes`,
		score.ID, score.ScorecardID, score.UserID, score.HoleID, score.Strokes, score.NetStrokes, timeValue(score.CreatedAt),
	)
	if err != nil {
		return model.HoleScore{}, err
	}
	row := s.db.QueryRow(`SELECT `+scoreCols+` FROM scores WHERE scorecard_id = ? AND user_id = ? AND hole_id = ?`,
		score.ScorecardID, score.UserID, score.HoleID)
	return scanScoreRow(row)
}

func (s *SQLiteStore) SumNetStrokesByPlayer(scope model.LeaderboardScope) ([]model.PlayerTotal, error) {
	var rows *sql.Rows
	var err error
	if scope.RoundID != "" {
		rows, err = s.db.Query(`SELECT s.user_id, SUM(s.strokes), SUM(s.net_strokes), COUNT(DISTINCT c.round_id)
FROM scores s
JOIN scorecards c ON c.id = s.scorecard_id
WHERE c.round_id = ?
GROUP BY s.user_id
ORDER BY SUM(s.net_strokes)`, scope.RoundID)
	} else {
		rows, err = s.db.Query(`SELECT s.user_id, SUM(s.strokes), SUM(s.net_strokes), COUNT(DISTINCT r.id)
FROM scores s
JOIN scorecards c ON c.id = s.scorecard_id
JOIN rounds r ON r.id = c.round_id
WHERE r.tournament_id = ?
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

const payoutCols = `id, tournament_id, user_id, round_id, amount, type, position, created_at`

func (s *SQLiteStore) ListPayoutsByTournament(tournamentID string) []model.Payout {
	rows, err := s.db.Query(`SELECT `+payoutCols+` FROM payouts WHERE tournament_id = ? ORDER BY position`, tournamentID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	payouts := []model.Payout{}
	for rows.Next() {
		p, err := scanPayoutRow(rows)
		if err != nil {
			continue
		}
		payouts = append(payouts, p)
	}
	return payouts
}

func (s *SQLiteStore) CreatePayout(payout model.Payout) (model.Payout, error) {
	if payout.ID == "" {
		payout.ID = uuid.NewString()
	}
	if payout.CreatedAt.IsZero() {
		payout.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO payouts (`+payoutCols+`) VALUES (?,?,?,?,?,?,?,?)`,
		payout.ID, payout.TournamentID, payout.UserID, nullString(payout.RoundID), payout.Amount, string(payout.Type), payout.Position, timeValue(payout.CreatedAt),
	)
	if err != nil {
		return model.Payout{}, err
	}
	return payout, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanUserRow(scanner rowScanner) (model.User, error) {
	var u model.User
	var createdAt sql.NullString
	if err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.HandicapIndex, &u.IsAdmin, &createdAt); err != nil {
		return model.User{}, err
	}
	u.CreatedAt = parseNullTime(createdAt)
	return u, nil
}

func scanTournamentRow(scanner rowScanner) (model.Tournament, error) {
	var t model.Tournament
	var status string
	var startDate, endDate, createdAt sql.NullString
	if err := scanner.Scan(&t.ID, &t.Name, &startDate, &endDate, &t.DailyBuyIn, &t.OverallBuyIn, &status, &t.IsActive, &createdAt); err != nil {
		return model.Tournament{}, err
	}
	t.Status = model.TournamentStatus(status)
	t.StartDate = parseNullTime(startDate)
	t.EndDate = parseNullTime(endDate)
	t.CreatedAt = parseNullTime(createdAt)
	return t, nil
}

func scanCourseRow(scanner rowScanner) (model.Course, error) {
	var c model.Course
	var createdAt sql.NullString
	if err := scanner.Scan(&c.ID, &c.Name, &c.Location, &c.Par, &c.Yardage, &c.SlopeRating, &c.CourseRating, &createdAt); err != nil {
		return model.Course{}, err
	}
	c.CreatedAt = parseNullTime(createdAt)
	return c, nil
}

func scanRoundRow(scanner rowScanner) (model.Round, error) {
	var r model.Round
	var status string
	var date, createdAt sql.NullString
	if err := scanner.Scan(&r.ID, &r.TournamentID, &r.CourseID, &r.RoundNumber, &date, &status, &createdAt); err != nil {
		return model.Round{}, err
	}
	r.Status = model.RoundStatus(status)
	r.Date = parseNullTime(date)
	r.CreatedAt = parseNullTime(createdAt)
	return r, nil
}

func scanScorecardRow(scanner rowScanner) (model.Scorecard, error) {
	var c model.Scorecard
	var playersJSON, createdAt sql.NullString
	if err := scanner.Scan(&c.ID, &c.RoundID, &c.Name, &playersJSON, &createdAt); err != nil {
		return model.Scorecard{}, err
	}
	c.CreatedAt = parseNullTime(createdAt)
	if playersJSON.Valid && strings.TrimSpace(playersJSON.String) != "" {
		_ = json.Unmarshal([]byte(playersJSON.String), &c.PlayerIDs)
	}
	return c, nil
}

func scanScoreRow(scanner rowScanner) (model.HoleScore, error) {
	var sc model.HoleScore
	var createdAt sql.NullString
	if err := scanner.Scan(&sc.ID, &sc.ScorecardID, &sc.UserID, &sc.HoleID, &sc.Strokes, &sc.NetStrokes, &createdAt); err != nil {
		return model.HoleScore{}, err
	}
	sc.CreatedAt = parseNullTime(createdAt)
	return sc, nil
}

func scanPayoutRow(scanner rowScanner) (model.Payout, error) {
	var p model.Payout
	var payoutType string
	var roundID, createdAt sql.NullString
	if err := scanner.Scan(&p.ID, &p.TournamentID, &p.UserID, &roundID, &p.Amount, &payoutType, &p.Position, &createdAt); err != nil {
		return model.Payout{}, err
	}
	p.Type = model.PayoutType(payoutType)
	if roundID.Valid {
		p.RoundID = roundID.String
	}
	p.CreatedAt = parseNullTime(createdAt)
	return p, nil
}

func toJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return data
}

func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func nullString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func parseNullTime(value sql.NullString) time.Time {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value.String); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value.String); err == nil {
		return parsed
	}
	return time.Time{}
}
