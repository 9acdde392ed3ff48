package game

import "fmt"

// pool holds the quizzes not yet asked in a session.
type pool struct {
	items []Quiz
}

func newPool(quizzes []Quiz) *pool {
	items := make([]Quiz, len(quizzes))
	copy(items, quizzes)
	return &pool{items: items}
}

func (p *pool) Len() int {
	return len(p.items)
}

// Take removes and returns the quiz at i, keeping the order of the rest.
// An out-of-range index is a caller bug.
func (p *pool) Take(i int) Quiz {
	if i < 0 || i >= len(p.items) {
		panic(fmt.Sprintf("game: pool index %d out of range [0,%d)", i, len(p.items)))
	}
	q := p.items[i]
	p.items = append(p.items[:i], p.items[i+1:]...)
	return q
}
