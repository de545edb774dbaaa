package blog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio/internal/domain"
)

const postExt = ".md"

var (
	slugPattern       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	frontMatterMarker = []byte("---")
)

type Service interface {
	List() ([]domain.BlogPost, error)
	Get(slug string) (*domain.BlogPost, error)
}

type service struct {
	posts  fs.FS
	logger *slog.Logger
}

// NewService reads posts from dir on every call so edits show up without a
// restart.
func NewService(dir string) Service {
	return NewServiceFS(os.DirFS(dir))
}

func NewServiceFS(posts fs.FS) Service {
	return &service{
		posts:  posts,
		logger: slog.Default().With(slog.String("component", "blog_service")),
	}
}

// List returns every post, newest first. Files that fail to parse are
// logged and left out.
func (s *service) List() ([]domain.BlogPost, error) {
	entries, err := fs.ReadDir(s.posts, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.BlogPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posts directory: %w", err)
	}

	posts := make([]domain.BlogPost, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExt) {
			continue
		}
		post, err := s.load(strings.TrimSuffix(entry.Name(), postExt))
		if err != nil {
			s.logger.Warn("skipping post", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}
		posts = append(posts, *post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

func (s *service) Get(slug string) (*domain.BlogPost, error) {
	if !slugPattern.MatchString(slug) {
		return nil, domain.ErrPostNotFound
	}

	post, err := s.load(slug)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrPostNotFound
	}
	return post, err
}

func (s *service) load(slug string) (*domain.BlogPost, error) {
	raw, err := fs.ReadFile(s.posts, slug+postExt)
	if err != nil {
		return nil, err
	}

	meta, content := splitFrontMatter(raw)

	var post domain.BlogPost
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &post); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
	}
	post.Slug = slug
	post.Content = string(content)
	return &post, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// markdown body. Without one the whole file is content.
func splitFrontMatter(raw []byte) (meta, content []byte) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	if !bytes.HasPrefix(raw, frontMatterMarker) {
		return nil, raw
	}

	rest := raw[len(frontMatterMarker):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, raw
	}
	rest = rest[nl+1:]

	for offset := 0; offset < len(rest); {
		end := bytes.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		if end >= 0 {
			line = rest[offset : offset+end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), frontMatterMarker) {
			meta = rest[:offset]
			if end < 0 {
				return meta, nil
			}
			return meta, bytes.TrimLeft(rest[offset+end+1:], "\r\n")
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, raw
}
