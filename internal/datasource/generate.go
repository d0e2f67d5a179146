package datasource

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// GeneratedFields are the columns of a synthetic dataset.
var GeneratedFields = []string{"id", "name", "city", "score", "status", "updated"}

// generatedNamespace scopes synthetic ids so the same seed and row always
// produce the same uuid.
var generatedNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("datagrid.generate"))

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Ken", "Radia", "Linus", "Frances", "Dennis", "Margaret", "Niklaus"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Thompson", "Perlman", "Torvalds", "Allen", "Ritchie", "Hamilton", "Wirth"}
	cities     = []string{"Lisbon", "Osaka", "Nairobi", "Quito", "Tallinn", "Perth", "Montréal", "Reykjavík", "Kraków", "Seoul"}
	statuses   = []string{"open", "in_progress", "blocked", "closed"}
)

var generateEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generate builds n deterministic synthetic rows from seed.
func Generate(n int, seed uint64) *Table {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, 0, max(n, 0))
	for i := 0; i < n; i++ {
		id := uuid.NewSHA1(generatedNamespace, []byte(fmt.Sprintf("%d/%d", seed, i))).String()
		updated := generateEpoch.Add(time.Duration(rng.IntN(365*24)) * time.Hour)
		records = append(records, Record{
			ID: id,
			Values: []string{
				id[:8],
				firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
				cities[rng.IntN(len(cities))],
				strconv.Itoa(rng.IntN(1000)),
				statuses[rng.IntN(len(statuses))],
				updated.Format(time.DateOnly),
			},
		})
	}
	return NewTable(append([]string(nil), GeneratedFields...), records)
}
