package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PhelGc/furina-latency/internal/config"
)

// Client cliente de Zendesk usando API v2 directamente
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	log        logrus.FieldLogger
	users      map[int64]User // Cache de autores ya resueltos
}

// User representa el autor de un comentario
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	TimeZone       string `json:"iana_time_zone"`
	Locale         string `json:"locale"`
	OrganizationID int64  `json:"organization_id"`
}

// Comment representa un comentario de un ticket
type Comment struct {
	ID        int64
	Public    bool
	Author    User
	CreatedAt string // Se deja sin parsear, el evaluador decide el formato
}

// commentsPage estructura de respuesta de /tickets/{id}/comments.json
type commentsPage struct {
	Comments []rawComment `json:"comments"`
	Users    []User       `json:"users"`
	NextPage *string      `json:"next_page"`
}

type rawComment struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"author_id"`
	Public    bool   `json:"public"`
	CreatedAt string `json:"created_at"`
}

type userResponse struct {
	User User `json:"user"`
}

// NewClient crea un nuevo cliente de Zendesk
func NewClient(cfg config.ZendeskConfig, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL:    cfg.URL(),
		email:      cfg.Email,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
		users:      make(map[int64]User),
	}
}

// Comments recorre todas las páginas de comentarios del ticket en orden.
// La secuencia se corta en el primer error.
func (c *Client) Comments(ctx context.Context, ticketID int64) iter.Seq2[Comment, error] {
	return func(yield func(Comment, error) bool) {
		next := fmt.Sprintf("%s/api/v2/tickets/%d/comments.json?include=users", c.baseURL, ticketID)
		page := 1

		for next != "" {
			var resp commentsPage
			if err := c.get(ctx, next, &resp); err != nil {
				yield(Comment{}, fmt.Errorf("error obteniendo comentarios del ticket %d: %w", ticketID, err))
				return
			}
			c.log.WithFields(logrus.Fields{
				"ticket_id": ticketID,
				"page":      page,
				"comments":  len(resp.Comments),
			}).Debug("Página de comentarios obtenida")

			for _, u := range resp.Users {
				c.users[u.ID] = u
			}

			for _, raw := range resp.Comments {
				author, err := c.author(ctx, raw.AuthorID)
				if err != nil {
					yield(Comment{}, err)
					return
				}
				comment := Comment{
					ID:        raw.ID,
					Public:    raw.Public,
					Author:    author,
					CreatedAt: raw.CreatedAt,
				}
				if !yield(comment, nil) {
					return
				}
			}

			next = ""
			if resp.NextPage != nil {
				next = *resp.NextPage
			}
			page++
		}
	}
}

// author obtiene el autor desde la cache o desde la API
func (c *Client) author(ctx context.Context, id int64) (User, error) {
	if u, ok := c.users[id]; ok {
		return u, nil
	}
	// Comentarios del sistema no tienen un usuario real
	if id <= 0 {
		return User{ID: id}, nil
	}

	var resp userResponse
	if err := c.get(ctx, fmt.Sprintf("%s/api/v2/users/%d.json", c.baseURL, id), &resp); err != nil {
		return User{}, fmt.Errorf("error obteniendo usuario %d: %w", id, err)
	}
	c.users[id] = resp.User
	return resp.User, nil
}

// get hace un GET autenticado y decodifica el JSON en out
func (c *Client) get(ctx context.Context, apiURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("error creando request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.email+"/token", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error haciendo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error leyendo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error en API de Zendesk (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parseando response: %w", err)
	}
	return nil
}
