package services

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/edavkifolio/src/database"
	"github.com/username/edavkifolio/src/logger"
	"github.com/username/edavkifolio/src/models"
)

var taxpayerTypes = map[string]bool{"FO": true, "PO": true, "SP": true}

type taxpayerServiceImpl struct {
	in  io.Reader
	out io.Writer
}

// NewTaxpayerService creates the taxpayer identity service. The reader and
// writer carry the first-run prompt; pass os.Stdin and os.Stdout.
func NewTaxpayerService(in io.Reader, out io.Writer) TaxpayerService {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &taxpayerServiceImpl{in: in, out: out}
}

func (s *taxpayerServiceImpl) Get() (models.Taxpayer, error) {
	var taxpayer models.Taxpayer
	err := database.DB.QueryRow(
		"SELECT tax_number, taxpayer_type FROM taxpayers ORDER BY id LIMIT 1").
		Scan(&taxpayer.TaxNumber, &taxpayer.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Taxpayer{}, ErrNoTaxpayer
		}
		return models.Taxpayer{}, fmt.Errorf("querying taxpayer: %w", err)
	}
	return taxpayer, nil
}

func (s *taxpayerServiceImpl) Save(taxpayer models.Taxpayer) error {
	if err := validateTaxpayer(taxpayer); err != nil {
		return err
	}

	// One identity per database; a second save replaces the first.
	_, err := database.DB.Exec(`
		INSERT INTO taxpayers (id, tax_number, taxpayer_type) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tax_number = excluded.tax_number,
			taxpayer_type = excluded.taxpayer_type,
			updated_at = CURRENT_TIMESTAMP`,
		taxpayer.TaxNumber, taxpayer.Type)
	if err != nil {
		return fmt.Errorf("saving taxpayer: %w", err)
	}
	logger.L.Info("Taxpayer saved", "taxNumber", taxpayer.TaxNumber, "type", taxpayer.Type)
	return nil
}

func (s *taxpayerServiceImpl) Ensure() (models.Taxpayer, error) {
	taxpayer, err := s.Get()
	if err == nil {
		return taxpayer, nil
	}
	if !errors.Is(err, ErrNoTaxpayer) {
		return models.Taxpayer{}, err
	}

	taxpayer, err = s.prompt()
	if err != nil {
		return models.Taxpayer{}, err
	}
	if err := s.Save(taxpayer); err != nil {
		return models.Taxpayer{}, err
	}
	return taxpayer, nil
}

func (s *taxpayerServiceImpl) prompt() (models.Taxpayer, error) {
	scanner := bufio.NewScanner(s.in)

	fmt.Fprint(s.out, "Tax number (8 digits): ")
	if !scanner.Scan() {
		return models.Taxpayer{}, fmt.Errorf("%w: no input for tax number", ErrInvalidTaxpayer)
	}
	taxNumber := strings.TrimSpace(scanner.Text())

	fmt.Fprint(s.out, "Taxpayer type (FO/PO/SP) [FO]: ")
	taxpayerType := "FO"
	if scanner.Scan() {
		if entered := strings.ToUpper(strings.TrimSpace(scanner.Text())); entered != "" {
			taxpayerType = entered
		}
	}

	taxpayer := models.Taxpayer{TaxNumber: taxNumber, Type: taxpayerType}
	if err := validateTaxpayer(taxpayer); err != nil {
		return models.Taxpayer{}, err
	}
	return taxpayer, nil
}

func validateTaxpayer(taxpayer models.Taxpayer) error {
	if len(taxpayer.TaxNumber) != 8 {
		return fmt.Errorf("%w: tax number %q must be 8 digits", ErrInvalidTaxpayer, taxpayer.TaxNumber)
	}
	for _, r := range taxpayer.TaxNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: tax number %q must be 8 digits", ErrInvalidTaxpayer, taxpayer.TaxNumber)
		}
	}
	if !taxpayerTypes[taxpayer.Type] {
		return fmt.Errorf("%w: taxpayer type %q (want FO, PO or SP)", ErrInvalidTaxpayer, taxpayer.Type)
	}
	return nil
}
