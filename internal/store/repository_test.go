package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/madocalc/internal/game/combat"
)

func TestPresetRepository_SaveValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewPresetRepository(openTemp(t))
	_, err := repo.Save(ctx, "Boss", "1500", "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		pName   string
		value   string
		wantErr error
	}{
		{"blank name", "   ", "100", ErrPresetNameRequired},
		{"zero value", "A", "0", ErrPresetValueInvalid},
		{"negative value", "A", "-5", ErrPresetValueInvalid},
		{"text value", "A", "abc", ErrPresetValueInvalid},
		{"duplicate name ignores case and spaces", "  boss ", "100", ErrPresetNameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Save(ctx, tt.pName, tt.value, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPresetRepository_SaveNormalises(t *testing.T) {
	ctx := context.Background()
	repo := NewPresetRepository(openTemp(t))

	p, err := repo.Save(ctx, "  Stage 3  ", "1500.50", "")
	require.NoError(t, err)
	assert.Equal(t, "Stage 3", p.Name)
	assert.Equal(t, "1500.5", p.Defense)
	assert.NotEmpty(t, p.ID)
}

func TestPresetRepository_Edit(t *testing.T) {
	ctx := context.Background()
	repo := NewPresetRepository(openTemp(t))

	a, err := repo.Save(ctx, "A", "100", "")
	require.NoError(t, err)
	b, err := repo.Save(ctx, "B", "200", "")
	require.NoError(t, err)

	edited, err := repo.Save(ctx, "a", "150", a.ID)
	require.NoError(t, err, "renaming to its own name in another case is allowed")
	assert.Equal(t, a.ID, edited.ID)
	assert.Equal(t, "150", edited.Defense)

	_, err = repo.Save(ctx, "B", "150", a.ID)
	assert.ErrorIs(t, err, ErrPresetNameTaken)

	_, err = repo.Save(ctx, "C", "150", "nope")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []combat.Preset{edited, b}, all, "edits keep their position")
}

func TestPresetRepository_DeleteAndCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewPresetRepository(openTemp(t))

	p, err := repo.Save(ctx, "Mine", "777", "")
	require.NoError(t, err)

	cat, err := repo.Catalog(ctx)
	require.NoError(t, err)
	v, ok := cat.DefenseFor(p.ID)
	require.True(t, ok)
	assert.Equal(t, "777", v)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrPresetNotFound)

	_, err = repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestMemoRepository_Save(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoRepository(openTemp(t))

	first, err := repo.Save(ctx, SectionDefender, " first ", map[string]string{"damageTaken_defender": "10"})
	require.NoError(t, err)
	assert.Equal(t, "first", first.Name)
	second, err := repo.Save(ctx, SectionDefender, "second", nil)
	require.NoError(t, err)
	assert.NotNil(t, second.Values)

	memos, err := repo.List(ctx, SectionDefender)
	require.NoError(t, err)
	require.Len(t, memos, 2)
	assert.Equal(t, "second", memos[0].Name, "newest first")

	_, err = repo.Save(ctx, SectionDefender, "first", nil)
	assert.ErrorIs(t, err, ErrMemoNameTaken)

	_, err = repo.Save(ctx, SectionDefender, "First", nil)
	assert.NoError(t, err, "memo names are case sensitive")

	_, err = repo.Save(ctx, SectionAttacker, "first", nil)
	assert.NoError(t, err, "names only clash within a section")

	_, err = repo.Save(ctx, SectionDefender, "  ", nil)
	assert.ErrorIs(t, err, ErrMemoNameRequired)

	_, err = repo.Save(ctx, MemoSection("nope"), "x", nil)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestMemoRepository_SaveCopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoRepository(openTemp(t))
	values := map[string]string{"k": "1"}

	m, err := repo.Save(ctx, SectionAbility, "x", values)
	require.NoError(t, err)
	values["k"] = "2"

	got, err := repo.Get(ctx, SectionAbility, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Values["k"])
}

func TestMemoRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoRepository(openTemp(t))

	m, err := repo.Save(ctx, SectionHPRecovery, "heal", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, SectionHPRecovery, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, SectionHPRecovery, m.ID), ErrMemoNotFound)

	_, err = repo.Get(ctx, SectionHPRecovery, m.ID)
	assert.ErrorIs(t, err, ErrMemoNotFound)
}

func TestParseMemoSection(t *testing.T) {
	s, err := ParseMemoSection("portraitStats_sc")
	require.NoError(t, err)
	assert.Equal(t, SectionPortrait, s)

	_, err = ParseMemoSection("x")
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.Len(t, MemoSections(), 7)
}
