package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

// Generation parameters, matching the shape of a representative retail
// portfolio: mostly small account activity with the occasional large
// financial-product event.
const (
	numClients = 20

	minAccountTxns   = 50
	maxAccountTxns   = 200
	minFinancialTxns = 1
	maxFinancialTxns = 5

	minAccountAmount   = 50_000
	maxAccountAmount   = 5_000_000
	minFinancialAmount = 5_000_000
	maxFinancialAmount = 50_000_000

	minIncome = 5_000_000
	maxIncome = 50_000_000

	historyDays = 365
)

var addresses = []string{"Jakarta", "Surabaya", "Bandung", "Medan", "Semarang"}

var accountTypes = []string{
	domain.AccountTypePurchase,
	domain.AccountTypeBillPayment,
	domain.AccountTypeTransfer,
}

var financialTypes = []string{
	domain.FinancialTypeLoanDisbursement,
	domain.FinancialTypeLoanPayment,
	domain.FinancialTypeInvestment,
}

// attributedTransaction pairs a transaction with the company or financial
// product its attribute row points at.
type attributedTransaction struct {
	Txn   domain.Transaction
	RefID string
}

// Dataset is a fully generated dummy portfolio ready to be written to the
// store.
type Dataset struct {
	Companies    []domain.Company
	Products     []domain.FinancialProduct
	Clients      []domain.Client
	Transactions []attributedTransaction
}

// Generate builds a complete random dataset. All randomness flows through rng
// so tests can pin a seed.
func Generate(rng *rand.Rand, now time.Time) Dataset {
	companies := generateCompanies(now)
	products := generateProducts(companies, now)
	clients := generateClients(rng, now)

	var transactions []attributedTransaction
	start := now.AddDate(0, 0, -historyDays)
	for _, client := range clients {
		n := minAccountTxns + rng.Intn(maxAccountTxns-minAccountTxns+1)
		for i := 0; i < n; i++ {
			transactions = append(transactions, randomAccountTransaction(rng, client.ID, companies, randomInstant(rng, start)))
		}

		n = minFinancialTxns + rng.Intn(maxFinancialTxns-minFinancialTxns+1)
		for i := 0; i < n; i++ {
			transactions = append(transactions, randomFinancialTransaction(rng, client.ID, products, randomInstant(rng, start)))
		}
	}

	return Dataset{
		Companies:    companies,
		Products:     products,
		Clients:      clients,
		Transactions: transactions,
	}
}

func generateCompanies(now time.Time) []domain.Company {
	catalog := []struct {
		name string
		typ  domain.CompanyType
	}{
		{"BCA", domain.CompanyBank},
		{"Mandiri", domain.CompanyBank},
		{"GoPay", domain.CompanyDigitalPayment},
		{"OVO", domain.CompanyDigitalPayment},
		{"Akulaku", domain.CompanyFintech},
		{"Kredivo", domain.CompanyFintech},
		{"AIA", domain.CompanyInsurance},
		{"Astra Life", domain.CompanyInsurance},
	}

	companies := make([]domain.Company, len(catalog))
	for i, c := range catalog {
		companies[i] = domain.Company{
			ID:        uuid.NewString(),
			Name:      c.name,
			Type:      c.typ,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return companies
}

func generateProducts(companies []domain.Company, now time.Time) []domain.FinancialProduct {
	byName := make(map[string]string, len(companies))
	for _, c := range companies {
		byName[c.Name] = c.ID
	}

	catalog := []struct {
		typ     string
		company string
		rate    float64
		term    int
	}{
		{"Personal Loan", "BCA", 12.5, 12},
		{"Business Loan", "Mandiri", 10.0, 24},
		{"Quick Loan", "Akulaku", 15.0, 6},
		{"Credit Line", "Kredivo", 18.0, 12},
	}

	products := make([]domain.FinancialProduct, len(catalog))
	for i, p := range catalog {
		products[i] = domain.FinancialProduct{
			ID:           uuid.NewString(),
			CompanyID:    byName[p.company],
			Type:         p.typ,
			InterestRate: p.rate,
			LoanTermMo:   p.term,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return products
}

func generateClients(rng *rand.Rand, now time.Time) []domain.Client {
	clients := make([]domain.Client, numClients)
	for i := range clients {
		income := int64(minIncome + rng.Intn(maxIncome-minIncome+1))
		client, _ := domain.NewClient(
			uuid.NewString(),
			fmt.Sprintf("Client %d", i+1),
			addresses[rng.Intn(len(addresses))],
			fmt.Sprintf("+62812%08d", rng.Intn(100_000_000)),
			income,
			now,
		)
		client.CreditScore = rng.Intn(1001)
		clients[i] = *client
	}
	return clients
}

// randomAccountTransaction synthesizes one account-category transaction for
// the client, attributed to a random company.
func randomAccountTransaction(rng *rand.Rand, clientID string, companies []domain.Company, at time.Time) attributedTransaction {
	amount := int64(minAccountAmount + rng.Intn(maxAccountAmount-minAccountAmount+1))
	txn, _ := domain.NewTransaction(uuid.NewString(), clientID, amount, domain.CategoryAccount, at)
	txn.AccountType = accountTypes[rng.Intn(len(accountTypes))]
	return attributedTransaction{Txn: *txn, RefID: companies[rng.Intn(len(companies))].ID}
}

// randomFinancialTransaction synthesizes one financial-category transaction
// for the client, attributed to a random financial product.
func randomFinancialTransaction(rng *rand.Rand, clientID string, products []domain.FinancialProduct, at time.Time) attributedTransaction {
	amount := int64(minFinancialAmount + rng.Intn(maxFinancialAmount-minFinancialAmount+1))
	txn, _ := domain.NewTransaction(uuid.NewString(), clientID, amount, domain.CategoryFinancial, at)
	txn.FinancialType = financialTypes[rng.Intn(len(financialTypes))]
	return attributedTransaction{Txn: *txn, RefID: products[rng.Intn(len(products))].ID}
}

// randomInstant picks a uniformly random moment within the history window.
func randomInstant(rng *rand.Rand, start time.Time) time.Time {
	return start.Add(time.Duration(rng.Int63n(int64(historyDays) * 24 * int64(time.Hour))))
}
