package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
)

type SQLiteDeckRepo struct {
	db db.DBTX
}

func NewSQLiteDeckRepo(conn db.DBTX) *SQLiteDeckRepo {
	return &SQLiteDeckRepo{db: conn}
}

const deckColumns = `id, owner_id, source_id, title, created_at`

// Create inserts the deck and its cards. Run it inside a UnitOfWork.
func (r *SQLiteDeckRepo) Create(ctx context.Context, d *domain.FlashcardDeck) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcard_decks (`+deckColumns+`) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.OwnerID, d.SourceID, d.Title, formatTimestamp(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting flashcard deck: %w", err)
	}
	for i := range d.Cards {
		c := &d.Cards[i]
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO flashcards (deck_id, position, topic, front, back, mastered, review_count, last_reviewed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, c.Index, c.Topic, c.Front, c.Back,
			boolToInt(c.Mastered), c.ReviewCount, nullableTimestamp(c.LastReviewedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting card %d: %w", c.Index, err)
		}
	}
	return nil
}

func (r *SQLiteDeckRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.FlashcardDeck, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deckColumns+` FROM flashcard_decks WHERE id = ? AND owner_id = ?`, id, ownerID)
	d, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.DeckNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	if d.Cards, err = r.loadCards(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDeckRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.FlashcardDeck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deckColumns+` FROM flashcard_decks WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing flashcard decks: %w", err)
	}
	var decks []*domain.FlashcardDeck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating flashcard decks: %w", err)
	}
	rows.Close()

	for _, d := range decks {
		if d.Cards, err = r.loadCards(ctx, d.ID); err != nil {
			return nil, err
		}
	}
	return decks, nil
}

func (r *SQLiteDeckRepo) SaveCard(ctx context.Context, deckID string, c *domain.DeckCard) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flashcards SET mastered = ?, review_count = ?, last_reviewed_at = ?
		WHERE deck_id = ? AND position = ?`,
		boolToInt(c.Mastered), c.ReviewCount, nullableTimestamp(c.LastReviewedAt),
		deckID, c.Index,
	)
	if err != nil {
		return fmt.Errorf("updating card %d: %w", c.Index, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking card update: %w", err)
	}
	if n == 0 {
		return &domain.CardNotFoundError{DeckID: deckID, Index: c.Index}
	}
	return nil
}

func (r *SQLiteDeckRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcard_decks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting flashcard deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deck delete: %w", err)
	}
	if n == 0 {
		return &domain.DeckNotFoundError{ID: id}
	}
	return nil
}

func (r *SQLiteDeckRepo) loadCards(ctx context.Context, deckID string) ([]domain.DeckCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT position, topic, front, back, mastered, review_count, last_reviewed_at
		FROM flashcards WHERE deck_id = ? ORDER BY position`, deckID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.DeckCard{}
	for rows.Next() {
		var c domain.DeckCard
		var mastered int
		var reviewed sql.NullString
		if err := rows.Scan(&c.Index, &c.Topic, &c.Front, &c.Back, &mastered, &c.ReviewCount, &reviewed); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		c.Mastered = intToBool(mastered)
		if c.LastReviewedAt, err = parseNullableTimestamp(reviewed, "last_reviewed_at"); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func scanDeck(row rowScanner) (*domain.FlashcardDeck, error) {
	var d domain.FlashcardDeck
	var createdAt string
	if err := row.Scan(&d.ID, &d.OwnerID, &d.SourceID, &d.Title, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning flashcard deck: %w", err)
	}
	var err error
	if d.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &d, nil
}
