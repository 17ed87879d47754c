package mockdata

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"formidamail/internal/model"
	"formidamail/internal/util"
)

// Generator produces synthetic inbox records.
// A Generator must not be shared between goroutines.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a generator whose text fields are drawn from the given seed.
// A zero seed picks a random one. Ids are always random UUIDs regardless of
// the seed, so two generators with the same seed still never collide.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Generate fills every empty field of overrides with a synthetic value and
// returns the completed record. Non-empty fields are kept as given.
func (g *Generator) Generate(overrides model.EmailRecord) model.EmailRecord {
	rec := overrides
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("%s %s", g.faker.FirstName(), g.faker.LastName())
	}
	if rec.Title == "" {
		rec.Title = g.faker.Sentence(6)
	}
	if rec.Body == "" {
		rec.Body = g.faker.Paragraph(1, 4, 12, " ")
	}
	if rec.Email == "" {
		rec.Email = util.NormalizeSender(g.faker.Email())
	}
	return rec
}

// GenerateBatch returns n freshly generated records in generation order.
func (g *Generator) GenerateBatch(n int) []model.EmailRecord {
	if n < 0 {
		n = 0
	}
	out := make([]model.EmailRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Generate(model.EmailRecord{}))
	}
	return out
}
