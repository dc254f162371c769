/*
Copyright © 2026 Atlas Lingo

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atlaslingo/darlingo/internal/adapter/repository"
	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/infrastructure/database"
)

// distractorSeed keeps padded quiz options reproducible across imports.
const distractorSeed = 42

// curriculumFile is one authored module file: shared level/module plus its
// ordered lessons. A lesson at order 999 is the module's games bundle.
type curriculumFile struct {
	Level   string `json:"level"`
	Module  string `json:"module"`
	Lessons []struct {
		Order   int32                `json:"order"`
		Title   string               `json:"title"`
		Content entity.LessonContent `json:"content"`
	} `json:"lessons"`
}

// importCmd loads curriculum JSON files into the lessons table.
var importCmd = &cobra.Command{
	Use:   "import [dir or file...]",
	Short: "Import curriculum lesson files into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()
		if err := database.InitSchema(cmd.Context(), db); err != nil {
			return err
		}

		paths, err := collectJSONFiles(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .json curriculum files found in %v", args)
		}

		lessons := repository.NewLessonRepository(db)
		rng := rand.New(rand.NewSource(distractorSeed))
		total := 0
		for _, path := range paths {
			n, err := importCurriculumFile(cmd.Context(), lessons, rng, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			total += n
		}
		cmd.Printf("imported %d lessons from %d files\n", total, len(paths))
		return nil
	},
}

func collectJSONFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	return paths, nil
}

func importCurriculumFile(ctx context.Context, lessons interface {
	Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
}, rng *rand.Rand, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var file curriculumFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	level := entity.ParseLevel(file.Level)
	count := 0
	for _, raw := range file.Lessons {
		content := raw.Content
		padCulturalQuiz(rng, content.GameContent.CulturalQuiz)

		lesson := &entity.Lesson{
			Level:   level,
			Module:  file.Module,
			Order:   raw.Order,
			Title:   raw.Title,
			Content: content,
		}
		if err := lesson.Validate(); err != nil {
			return 0, fmt.Errorf("lesson %q: %w", raw.Title, err)
		}
		if _, err := lessons.Create(ctx, lesson); err != nil {
			return 0, fmt.Errorf("lesson %q: %w", raw.Title, err)
		}
		count++
	}
	return count, nil
}

// padCulturalQuiz tops up short distractor pools from the other questions'
// correct answers so every question can render four options.
func padCulturalQuiz(rng *rand.Rand, items []entity.CulturalQuizItem) {
	var answers []string
	for _, item := range items {
		answers = append(answers, item.CorrectAnswer)
	}
	for i := range items {
		item := &items[i]
		if len(item.Distractors) >= 3 {
			continue
		}
		candidates := make([]string, 0, len(answers))
		for _, answer := range answers {
			if answer == item.CorrectAnswer || slices.Contains(item.Distractors, answer) {
				continue
			}
			candidates = append(candidates, answer)
		}
		rng.Shuffle(len(candidates), func(a, b int) {
			candidates[a], candidates[b] = candidates[b], candidates[a]
		})
		for _, candidate := range candidates {
			if len(item.Distractors) >= 3 {
				break
			}
			item.Distractors = append(item.Distractors, candidate)
		}
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
