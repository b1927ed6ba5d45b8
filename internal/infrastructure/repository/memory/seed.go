package memory

import (
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/season"
)

func SeedRaces() []season.Race {
	return []season.Race{
		race(1, "Australian Grand Prix", "Albert Park Circuit", "AU", "2026-03-08", "2026-03-08T04:00:00Z", "2026-03-06T01:30:00Z", false),
		race(2, "Chinese Grand Prix", "Shanghai International Circuit", "CN", "2026-03-15", "2026-03-15T07:00:00Z", "2026-03-13T03:30:00Z", true),
		race(3, "Japanese Grand Prix", "Suzuka Circuit", "JP", "2026-03-29", "2026-03-29T05:00:00Z", "", false),
		race(4, "Bahrain Grand Prix", "Bahrain International Circuit", "BH", "2026-04-12", "2026-04-12T15:00:00Z", "", false),
		race(5, "Saudi Arabian Grand Prix", "Jeddah Corniche Circuit", "SA", "2026-04-19", "2026-04-19T17:00:00Z", "", false),
		race(6, "Miami Grand Prix", "Miami International Autodrome", "US", "2026-05-03", "2026-05-03T20:00:00Z", "", true),
		race(7, "Canadian Grand Prix", "Circuit Gilles Villeneuve", "CA", "2026-05-24", "2026-05-24T18:00:00Z", "", true),
		race(8, "Monaco Grand Prix", "Circuit de Monaco", "MC", "2026-06-07", "2026-06-07T13:00:00Z", "", false),
		race(9, "Barcelona-Catalunya Grand Prix", "Circuit de Barcelona-Catalunya", "ES", "2026-06-14", "2026-06-14T13:00:00Z", "", false),
		race(10, "Austrian Grand Prix", "Red Bull Ring", "AT", "2026-06-28", "2026-06-28T13:00:00Z", "", false),
		race(11, "British Grand Prix", "Silverstone Circuit", "GB", "2026-07-05", "2026-07-05T14:00:00Z", "", true),
		race(12, "Belgian Grand Prix", "Circuit de Spa-Francorchamps", "BE", "2026-07-19", "2026-07-19T13:00:00Z", "", false),
		race(13, "Hungarian Grand Prix", "Hungaroring", "HU", "2026-07-26", "2026-07-26T13:00:00Z", "", false),
		race(14, "Dutch Grand Prix", "Circuit Zandvoort", "NL", "2026-08-23", "2026-08-23T13:00:00Z", "", true),
		race(15, "Italian Grand Prix", "Autodromo Nazionale Monza", "IT", "2026-09-06", "2026-09-06T13:00:00Z", "", false),
		race(16, "Spanish Grand Prix", "Madring, Madrid", "ES", "2026-09-13", "2026-09-13T13:00:00Z", "", false),
		race(17, "Azerbaijan Grand Prix", "Baku City Circuit", "AZ", "2026-09-27", "2026-09-27T11:00:00Z", "", false),
		race(18, "Singapore Grand Prix", "Marina Bay Street Circuit", "SG", "2026-10-11", "2026-10-11T12:00:00Z", "", true),
		race(19, "United States Grand Prix", "Circuit of the Americas", "US", "2026-10-25", "2026-10-25T19:00:00Z", "", false),
		race(20, "Mexico City Grand Prix", "Autodromo Hermanos Rodriguez", "MX", "2026-11-01", "2026-11-01T20:00:00Z", "", false),
		race(21, "Brazilian Grand Prix", "Autodromo Jose Carlos Pace", "BR", "2026-11-08", "2026-11-08T17:00:00Z", "", false),
		race(22, "Las Vegas Grand Prix", "Las Vegas Strip Circuit", "US", "2026-11-21", "2026-11-22T06:00:00Z", "", false),
		race(23, "Qatar Grand Prix", "Lusail International Circuit", "QA", "2026-11-29", "2026-11-29T16:00:00Z", "", false),
		race(24, "Abu Dhabi Grand Prix", "Yas Marina Circuit", "AE", "2026-12-06", "2026-12-06T13:00:00Z", "", false),
	}
}

func SeedDrivers() []season.Driver {
	return []season.Driver{
		{ID: "max-verstappen", Name: "Max Verstappen", Team: "red-bull"},
		{ID: "isack-hadjar", Name: "Isack Hadjar", Team: "red-bull"},
		{ID: "lewis-hamilton", Name: "Lewis Hamilton", Team: "ferrari"},
		{ID: "charles-leclerc", Name: "Charles Leclerc", Team: "ferrari"},
		{ID: "george-russell", Name: "George Russell", Team: "mercedes"},
		{ID: "kimi-antonelli", Name: "Kimi Antonelli", Team: "mercedes"},
		{ID: "lando-norris", Name: "Lando Norris", Team: "mclaren"},
		{ID: "oscar-piastri", Name: "Oscar Piastri", Team: "mclaren"},
		{ID: "fernando-alonso", Name: "Fernando Alonso", Team: "aston-martin"},
		{ID: "lance-stroll", Name: "Lance Stroll", Team: "aston-martin"},
		{ID: "pierre-gasly", Name: "Pierre Gasly", Team: "alpine"},
		{ID: "franco-colapinto", Name: "Franco Colapinto", Team: "alpine"},
		{ID: "carlos-sainz", Name: "Carlos Sainz", Team: "williams"},
		{ID: "alexander-albon", Name: "Alexander Albon", Team: "williams"},
		{ID: "nico-hulkenberg", Name: "Nico Hulkenberg", Team: "audi"},
		{ID: "gabriel-bortoleto", Name: "Gabriel Bortoleto", Team: "audi"},
		{ID: "liam-lawson", Name: "Liam Lawson", Team: "racing-bulls"},
		{ID: "arvid-lindblad", Name: "Arvid Lindblad", Team: "racing-bulls"},
		{ID: "oliver-bearman", Name: "Oliver Bearman", Team: "haas"},
		{ID: "esteban-ocon", Name: "Esteban Ocon", Team: "haas"},
		{ID: "valtteri-bottas", Name: "Valtteri Bottas", Team: "cadillac"},
		{ID: "sergio-perez", Name: "Sergio Perez", Team: "cadillac"},
	}
}

func SeedConstructors() []season.Constructor {
	return []season.Constructor{
		{ID: "red-bull", Name: "Red Bull"},
		{ID: "ferrari", Name: "Ferrari"},
		{ID: "mercedes", Name: "Mercedes"},
		{ID: "mclaren", Name: "McLaren"},
		{ID: "aston-martin", Name: "Aston Martin"},
		{ID: "alpine", Name: "Alpine"},
		{ID: "williams", Name: "Williams"},
		{ID: "audi", Name: "Audi"},
		{ID: "racing-bulls", Name: "Racing Bulls"},
		{ID: "haas", Name: "Haas"},
		{ID: "cadillac", Name: "Cadillac"},
	}
}

func race(round int, name, circuit, countryCode, raceDate, startUTC, weekendStartUTC string, sprint bool) season.Race {
	out := season.Race{
		Round:       round,
		Name:        name,
		Circuit:     circuit,
		CountryCode: countryCode,
		RaceDate:    raceDate,
		StartUTC:    mustParseTime(startUTC),
		Sprint:      sprint,
	}
	if weekendStartUTC != "" {
		t := mustParseTime(weekendStartUTC)
		out.WeekendStartUTC = &t
	}
	return out
}

func mustParseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
