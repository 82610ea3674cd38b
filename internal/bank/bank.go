package bank

// Bank is the ordered, immutable question collection loaded once at
// startup. All lookups during a session go through it.
type Bank struct {
	questions []Question
	byID      map[int]*Question
}

// New builds a Bank from validated questions, preserving order.
func New(questions []Question) *Bank {
	b := &Bank{
		questions: questions,
		byID:      make(map[int]*Question, len(questions)),
	}
	for i := range questions {
		b.byID[questions[i].ID] = &b.questions[i]
	}
	return b
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns the questions in bank order. Callers must not mutate.
func (b *Bank) All() []Question {
	return b.questions
}

// ByID returns the question with the given id, or nil.
func (b *Bank) ByID(id int) *Question {
	return b.byID[id]
}

// IDs returns all question ids in bank order.
func (b *Bank) IDs() []int {
	ids := make([]int, len(b.questions))
	for i := range b.questions {
		ids[i] = b.questions[i].ID
	}
	return ids
}
