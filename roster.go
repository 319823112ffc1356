package main

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"lineup/internal/types"
)

var dataHeader = []string{"year", "team", "position", "player_name", "games_played"}

// loadData reads season rows from path, seeding it with sample data when missing.
func loadData(path string) ([]PlayerSeason, error) {
	logInfo("Loading roster data from %s", path)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logWarn("Roster data %s not found, writing sample data", path)
		data := sampleData()
		if err := saveData(path, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseData(f)
}

// parseData decodes the CSV roster format. Columns are matched by header name.
func parseData(r io.Reader) ([]PlayerSeason, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range dataHeader {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var data []PlayerSeason
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[cols["year"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year: %w", line, err)
		}
		games, err := strconv.Atoi(strings.TrimSpace(rec[cols["games_played"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid games_played: %w", line, err)
		}
		data = append(data, PlayerSeason{
			Year:        year,
			Team:        strings.TrimSpace(rec[cols["team"]]),
			Position:    strings.TrimSpace(rec[cols["position"]]),
			PlayerName:  strings.TrimSpace(rec[cols["player_name"]]),
			GamesPlayed: games,
		})
	}
	return data, nil
}

// saveData writes rows in the CSV roster format.
func saveData(path string, data []PlayerSeason) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(dataHeader); err != nil {
		f.Close()
		return err
	}
	for _, row := range data {
		err := w.Write([]string{
			strconv.Itoa(row.Year),
			row.Team,
			row.Position,
			row.PlayerName,
			strconv.Itoa(row.GamesPlayed),
		})
		if err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func season(year int, team, position, player string, games int) PlayerSeason {
	return PlayerSeason{Year: year, Team: team, Position: position, PlayerName: player, GamesPlayed: games}
}

func sampleData() []PlayerSeason {
	dodgers := "Los Angeles Dodgers"
	braves := "Atlanta Braves"
	return []PlayerSeason{
		season(2020, dodgers, "C", "Austin Barnes", 30),
		season(2020, dodgers, "1B", "Max Muncy", 58),
		season(2020, dodgers, "2B", "Gavin Lux", 23),
		season(2020, dodgers, "3B", "Justin Turner", 42),
		season(2020, dodgers, "SS", "Corey Seager", 52),
		season(2020, dodgers, "LF", "AJ Pollock", 55),
		season(2020, dodgers, "CF", "Cody Bellinger", 56),
		season(2020, dodgers, "RF", "Mookie Betts", 55),
		season(2020, dodgers, "DH", "Edwin Rios", 15),

		season(2021, braves, "C", "Travis d'Arnaud", 82),
		season(2021, braves, "1B", "Freddie Freeman", 159),
		season(2021, braves, "2B", "Ozzie Albies", 156),
		season(2021, braves, "3B", "Austin Riley", 160),
		season(2021, braves, "SS", "Dansby Swanson", 160),
		season(2021, braves, "LF", "Eddie Rosario", 109),
		season(2021, braves, "CF", "Ronald Acuna Jr", 82),
		season(2021, braves, "RF", "Jorge Soler", 137),
	}
}

// randomIndex returns a uniform index in [0, n), falling back to 0.
func randomIndex(ctx context.Context, n int) int {
	if n <= 1 {
		return 0
	}
	select {
	case <-ctx.Done():
		logWarn("%srandomIndex cancelled: %v", reqPrefix(ctx), ctx.Err())
		return 0
	default:
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		logWarn("%sError generating random number: %v, using fallback", reqPrefix(ctx), err)
		return 0
	}
	return int(v.Int64())
}

// randomTeam picks a random season in [MinYear, MaxYear], then a random team from it.
// When the chosen season has no data, a random known season is used instead.
func (app *App) randomTeam(ctx context.Context) (int, string, error) {
	if len(app.Data) == 0 {
		return 0, "", errors.New(ErrorNoRosterData)
	}
	year := MinYear + randomIndex(ctx, MaxYear-MinYear+1)
	teams := app.teamsForYear(year)
	if len(teams) == 0 {
		years := lo.Uniq(lo.Map(app.Data, func(row PlayerSeason, _ int) int { return row.Year }))
		year = years[randomIndex(ctx, len(years))]
		teams = app.teamsForYear(year)
	}
	team := teams[randomIndex(ctx, len(teams))]
	logInfo("%sSelected %d %s", reqPrefix(ctx), year, team)
	return year, team, nil
}

func (app *App) teamsForYear(year int) []string {
	rows := lo.Filter(app.Data, func(row PlayerSeason, _ int) bool { return row.Year == year })
	return lo.Uniq(lo.Map(rows, func(row PlayerSeason, _ int) string { return row.Team }))
}

// teamRoster maps position code to player for a team season. Only the first nine rows count,
// and the ninth only when it is a designated hitter.
func (app *App) teamRoster(year int, team string) map[string]string {
	rows := lo.Filter(app.Data, func(row PlayerSeason, _ int) bool {
		return row.Year == year && row.Team == team
	})
	if len(rows) > RosterSize {
		rows = rows[:RosterSize]
	}
	if len(rows) == RosterSize && rows[RosterSize-1].Position != types.PositionDH {
		rows = rows[:RosterSize-1]
	}

	roster := make(map[string]string, len(rows))
	for _, row := range rows {
		if _, ok := types.PositionNames[row.Position]; ok {
			roster[row.Position] = row.PlayerName
		}
	}
	return roster
}

func hasDesignatedHitter(roster map[string]string) bool {
	_, ok := roster[types.PositionDH]
	return ok
}

// rosterPositions lists the positions present in roster, in display order.
func rosterPositions(roster map[string]string) []types.Position {
	codes := lo.Filter(types.PositionOrder, func(code string, _ int) bool {
		_, ok := roster[code]
		return ok
	})
	return lo.Map(codes, func(code string, _ int) types.Position {
		return types.Position{Code: code, Name: types.PositionNames[code]}
	})
}
