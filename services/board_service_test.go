package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akis.link/models"
)

func TestCreateBoardLeadsTemplate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)

	board, err := svc.CreateBoard(context.Background(), user.ID, "Satış Panosu", models.BoardTemplateLeads, nil)
	require.NoError(t, err)

	var columns []models.BoardColumn
	require.NoError(t, db.Where("board_id = ?", board.ID).Order("order_index ASC").Find(&columns).Error)
	require.Len(t, columns, len(leadsTemplateColumns))
	for i, col := range columns {
		assert.Equal(t, leadsTemplateColumns[i].Title, col.Title)
		assert.Equal(t, i, col.OrderIndex)
	}
}

func TestCreateBoardInvalidTemplate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)

	_, err := svc.CreateBoard(context.Background(), user.ID, "X", "bilinmeyen", nil)
	assert.ErrorIs(t, err, ErrBrdInvalidInput)
}

func TestColumnAppendedAtTail(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)

	ctx := context.Background()
	first, err := svc.CreateColumn(ctx, board.ID, user.ID, "Birinci", "")
	require.NoError(t, err)
	second, err := svc.CreateColumn(ctx, board.ID, user.ID, "İkinci", "")
	require.NoError(t, err)

	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
}

func TestMoveCardAcrossColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	src, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kaynak", "")
	require.NoError(t, err)
	dst, err := svc.CreateColumn(ctx, board.ID, user.ID, "Hedef", "")
	require.NoError(t, err)

	// Kaynak: A B C, Hedef: X Y
	var a *models.BoardCard
	for _, title := range []string{"A", "B", "C"} {
		card, err := svc.CreateCard(ctx, src.ID, user.ID, title, "", "")
		require.NoError(t, err)
		if title == "A" {
			a = card
		}
	}
	for _, title := range []string{"X", "Y"} {
		_, err := svc.CreateCard(ctx, dst.ID, user.ID, title, "", "")
		require.NoError(t, err)
	}

	// A kartı hedef kolonda 1. indekse taşınır
	err = svc.MoveCard(ctx, user.ID, CardMoveRequest{CardID: a.ID, ToColumnID: dst.ID, ToIndex: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C"}, columnCardTitles(t, db, src.ID))
	assert.Equal(t, []string{"X", "A", "Y"}, columnCardTitles(t, db, dst.ID))

	// İki kolonun indeks kümesi de yoğun kalmalı
	assert.Equal(t, []int{0, 1}, columnCardIndexes(t, db, src.ID))
	assert.Equal(t, []int{0, 1, 2}, columnCardIndexes(t, db, dst.ID))

	// Kart tam olarak tek kolonda görünmeli
	var moved models.BoardCard
	require.NoError(t, db.First(&moved, "id = ?", a.ID).Error)
	assert.Equal(t, dst.ID, moved.ColumnID)
}

func TestMoveCardWithinColumn(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	col, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kolon", "")
	require.NoError(t, err)

	var c *models.BoardCard
	for _, title := range []string{"A", "B", "C"} {
		card, err := svc.CreateCard(ctx, col.ID, user.ID, title, "", "")
		require.NoError(t, err)
		if title == "C" {
			c = card
		}
	}

	err = svc.MoveCard(ctx, user.ID, CardMoveRequest{CardID: c.ID, ToColumnID: col.ID, ToIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, columnCardTitles(t, db, col.ID))
	assert.Equal(t, []int{0, 1, 2}, columnCardIndexes(t, db, col.ID))
}

func TestMoveCardSameSlotNoChange(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	col, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kolon", "")
	require.NoError(t, err)
	var b *models.BoardCard
	for _, title := range []string{"A", "B"} {
		card, err := svc.CreateCard(ctx, col.ID, user.ID, title, "", "")
		require.NoError(t, err)
		if title == "B" {
			b = card
		}
	}

	// Kart zaten 1. indekste; aynı yuvaya bırakma sırayı değiştirmez
	err = svc.MoveCard(ctx, user.ID, CardMoveRequest{CardID: b.ID, ToColumnID: col.ID, ToIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, columnCardTitles(t, db, col.ID))
}

func TestMoveCardToOtherBoardRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	ctx := context.Background()

	board1 := newTestBoard(t, svc, user.ID)
	board2 := newTestBoard(t, svc, user.ID)
	col1, err := svc.CreateColumn(ctx, board1.ID, user.ID, "Bir", "")
	require.NoError(t, err)
	col2, err := svc.CreateColumn(ctx, board2.ID, user.ID, "İki", "")
	require.NoError(t, err)
	card, err := svc.CreateCard(ctx, col1.ID, user.ID, "A", "", "")
	require.NoError(t, err)

	err = svc.MoveCard(ctx, user.ID, CardMoveRequest{CardID: card.ID, ToColumnID: col2.ID, ToIndex: 0})
	assert.ErrorIs(t, err, ErrBrdInvalidInput)
}

func TestReorderColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	var third *models.BoardColumn
	for _, title := range []string{"Bir", "İki", "Üç"} {
		col, err := svc.CreateColumn(ctx, board.ID, user.ID, title, "")
		require.NoError(t, err)
		if title == "Üç" {
			third = col
		}
	}

	require.NoError(t, svc.ReorderColumn(ctx, board.ID, third.ID, user.ID, 0))

	var columns []models.BoardColumn
	require.NoError(t, db.Where("board_id = ?", board.ID).Order("order_index ASC").Find(&columns).Error)
	titles := []string{columns[0].Title, columns[1].Title, columns[2].Title}
	assert.Equal(t, []string{"Üç", "Bir", "İki"}, titles)
	for i, col := range columns {
		assert.Equal(t, i, col.OrderIndex)
	}
}

func TestDeleteColumnRefusedWhenNotEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	col, err := svc.CreateColumn(ctx, board.ID, user.ID, "Dolu", "")
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, col.ID, user.ID, "A", "", "")
	require.NoError(t, err)

	err = svc.DeleteColumn(ctx, col.ID, user.ID, false)
	assert.ErrorIs(t, err, ErrColumnNotEmpty)

	// Kolon ve kart yerinde durmalı
	var count int64
	require.NoError(t, db.Model(&models.BoardCard{}).Where("column_id = ?", col.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteColumnCascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	first, err := svc.CreateColumn(ctx, board.ID, user.ID, "Silinecek", "")
	require.NoError(t, err)
	second, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kalacak", "")
	require.NoError(t, err)

	card, err := svc.CreateCard(ctx, first.ID, user.ID, "A", "", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.CardAttachment{
		CardID: card.ID, FileName: "ek.pdf", URL: "https://blob.test/ek.pdf",
	}).Error)

	require.NoError(t, svc.DeleteColumn(ctx, first.ID, user.ID, true))

	var cardCount, attCount int64
	require.NoError(t, db.Model(&models.BoardCard{}).Where("column_id = ?", first.ID).Count(&cardCount).Error)
	require.NoError(t, db.Model(&models.CardAttachment{}).Where("card_id = ?", card.ID).Count(&attCount).Error)
	assert.EqualValues(t, 0, cardCount)
	assert.EqualValues(t, 0, attCount)

	// Kalan kolon 0 indeksine inmeli
	var remaining models.BoardColumn
	require.NoError(t, db.First(&remaining, "id = ?", second.ID).Error)
	assert.Equal(t, 0, remaining.OrderIndex)
}

func TestDeleteCardRenumbersColumn(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	col, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kolon", "")
	require.NoError(t, err)
	var b *models.BoardCard
	for _, title := range []string{"A", "B", "C"} {
		card, err := svc.CreateCard(ctx, col.ID, user.ID, title, "", "")
		require.NoError(t, err)
		if title == "B" {
			b = card
		}
	}

	require.NoError(t, svc.DeleteCard(ctx, b.ID, user.ID))
	assert.Equal(t, []string{"A", "C"}, columnCardTitles(t, db, col.ID))
	assert.Equal(t, []int{0, 1}, columnCardIndexes(t, db, col.ID))
}

func TestBoardOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	owner := newTestUser(t, db, 0)
	intruder := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, owner.ID)
	ctx := context.Background()

	_, err := svc.GetBoardByID(ctx, board.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrBoardForbidden)

	err = svc.DeleteBoard(ctx, board.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrBoardForbidden)

	_, err = svc.CreateColumn(ctx, board.ID, intruder.ID, "X", "")
	assert.ErrorIs(t, err, ErrBoardForbidden)
}

func TestUpdateCardIgnoresPlacementFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardServiceTx(db)
	user := newTestUser(t, db, 0)
	board := newTestBoard(t, svc, user.ID)
	ctx := context.Background()

	col, err := svc.CreateColumn(ctx, board.ID, user.ID, "Kolon", "")
	require.NoError(t, err)
	card, err := svc.CreateCard(ctx, col.ID, user.ID, "A", "", models.CardPriorityLow)
	require.NoError(t, err)

	err = svc.UpdateCard(ctx, card.ID, user.ID, map[string]interface{}{
		"title":       "Yeni Başlık",
		"completed":   true,
		"order_index": 99,
		"column_id":   uuid.New(),
	})
	require.NoError(t, err)

	var updated models.BoardCard
	require.NoError(t, db.First(&updated, "id = ?", card.ID).Error)
	assert.Equal(t, "Yeni Başlık", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, 0, updated.OrderIndex)
	assert.Equal(t, col.ID, updated.ColumnID)
}
