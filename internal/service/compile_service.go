package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"examgen-be/internal/dto"
	"examgen-be/pkg/compile"

	"github.com/gofiber/fiber/v2"
)

// latexEngines in preference order. xelatex and lualatex handle CJK fonts;
// pdflatex is the last resort for plain ASCII documents.
var latexEngines = []string{"xelatex", "lualatex", "pdflatex"}

const compileTimeout = 30 * time.Second

type ICompileService interface {
	CompilePdf(ctx context.Context, req *dto.CompilePdfRequest) (*dto.CompilePdfResponse, error)
}

type compileService struct {
	store *compile.ArtifactStore
}

func NewCompileService(store *compile.ArtifactStore) ICompileService {
	return &compileService{store: store}
}

// CompilePdf runs a local LaTeX engine over the submitted source and
// publishes the resulting PDF through the artifact store. The engine runs in
// a throwaway directory that is removed whether or not it succeeds.
func (s *compileService) CompilePdf(ctx context.Context, req *dto.CompilePdfRequest) (*dto.CompilePdfResponse, error) {
	engine, err := findEngine()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}

	dir, err := os.MkdirTemp("", "generated_pdf_")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	texPath := filepath.Join(dir, "document.tex")
	source := compile.StripFences(req.Latex)
	if err := os.WriteFile(texPath, []byte(source), 0o600); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, engine,
		"-interaction=nonstopmode", "-halt-on-error",
		"-output-directory", dir, texPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("latex compilation failed: %s", firstLatexError(string(out))))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "pdf was not generated")
	}

	token, err := s.store.Put(ctx, pdf, "application/pdf")
	if err != nil {
		return nil, err
	}

	return &dto.CompilePdfResponse{
		ArtifactRef:      "/api/artifact/v1/" + token,
		ExpiresInSeconds: int(s.store.TTL().Seconds()),
	}, nil
}

func findEngine() (string, error) {
	for _, name := range latexEngines {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no latex engine available (tried %s)", strings.Join(latexEngines, ", "))
}

// firstLatexError pulls the first "!" line out of engine output so the
// response carries the actual error instead of pages of log noise.
func firstLatexError(out string) string {
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "!") {
			return trimmed
		}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "unknown error"
	}
	lines := strings.Split(out, "\n")
	return lines[len(lines)-1]
}
