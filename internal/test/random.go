package test

import (
	"fmt"
	"math/rand"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

const loginAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	firstNames = []string{"Amina", "Brian", "Chen", "Dara", "Esi", "Farid", "Grace", "Hugo"}
	lastNames  = []string{"Okafor", "Mwangi", "Li", "Novak", "Mensah", "Haddad", "Kim", "Silva"}
)

// RandomUsername returns a lowercase login with the given prefix and n random characters.
func RandomUsername(prefix string, n int) string {
	if n <= 0 {
		n = 6
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = loginAlphabet[rand.Intn(len(loginAlphabet))]
	}
	return prefix + string(buf)
}

// RandomLoanInput returns a valid loan input with a plausible borrower.
func RandomLoanInput() model.LoanInput {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	return model.LoanInput{
		BorrowerName:  first + " " + last,
		BorrowerEmail: fmt.Sprintf("%s.%s@example.com", first, last),
		BorrowerPhone: fmt.Sprintf("07%08d", rand.Intn(100000000)),
		Amount:        float64(100 * (1 + rand.Intn(500))),
		TermMonths:    1 + rand.Intn(24),
	}
}
