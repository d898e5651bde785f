package main

import (
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"showtimes-api-go/logcolors"
)

const headerTmpl = `{{define "header"}}<header>
<h1>Афиша кино</h1>
<p>Город: <strong>{{.SelectedCityName}}</strong></p>
<nav class="cities">
{{range .CityColumns}}<ul>
{{range .}}<li><a href="/{{.ID}}/">{{.Name}}</a></li>
{{end}}</ul>
{{end}}</nav>
</header>{{end}}`

const filmsListTmpl = `{{define "films_list"}}<!DOCTYPE html>
<html lang="ru"><head><meta charset="utf-8"><title>{{.Header}}</title></head>
<body>
{{template "header" .Common}}
<main>
<form method="get" action="/">
<label>Фильмов: <input name="top_size" value="{{.TopSize}}"></label>
<label>Кинотеатров от: <input name="cinemas_over" value="{{.CinemasOver}}"></label>
<label>Рейтинг от: <input name="rating_over" value="{{.RatingOver}}"></label>
<button>Показать</button>
</form>
<table>
<tr><th>Фильм</th><th>Рейтинг</th><th>Кинотеатров</th></tr>
{{$city := .Common.CityID}}
{{range .Films}}<tr>
<td>{{if .ID}}<a href="/movie/{{.ID}}/">{{.Title}}</a>{{else}}{{.Title}}{{end}}</td>
<td>{{printf "%.1f" .Rating}}</td>
<td>{{.VenueCount $city}}</td>
</tr>
{{end}}</table>
</main>
</body></html>{{end}}`

const filmDetailTmpl = `{{define "film_detail"}}<!DOCTYPE html>
<html lang="ru"><head><meta charset="utf-8"><title>{{.Header}}</title></head>
<body>
{{template "header" .Common}}
<main>
<h2>{{.Film.Title}}</h2>
{{with .Film.Detail}}
{{if .Image}}<img src="{{.Image}}" alt="">{{end}}
<p>Рейтинг: {{printf "%.1f" $.Film.Rating}} ({{.AggregateRating.RatingCount}} оценок)</p>
{{if .Genre}}<p>Жанр: {{.Genre}}</p>{{end}}
{{if $.Film.DurationMinutes}}<p>Длительность: {{$.Film.DurationMinutes}} мин.</p>{{end}}
{{if .Director.Name}}<p>Режиссёр: {{.Director.Name}}</p>{{end}}
{{if .Actor}}<p>В ролях: {{range $i, $a := .Actor}}{{if $i}}, {{end}}{{$a.Name}}{{end}}</p>{{end}}
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{end}}
<p>Кинотеатров в городе: {{.Film.VenueCount .Common.CityID}}</p>
</main>
</body></html>{{end}}`

const aboutAPITmpl = `{{define "about_api"}}<!DOCTYPE html>
<html lang="ru"><head><meta charset="utf-8"><title>{{.Header}}</title></head>
<body>
{{template "header" .Common}}
<main>
<h2>API</h2>
<p><code>GET /api/get_films_list</code> — список фильмов в формате JSON.
Параметры: <code>city</code> (id города), <code>top_size</code> (-1 = без ограничения),
<code>cinemas_over</code>, <code>rating_over</code>.</p>
<p><code>GET /api/movie/&lt;id&gt;</code> — один фильм по числовому id.</p>
</main>
</body></html>{{end}}`

var templates = template.Must(template.New("pages").Parse(
	headerTmpl + filmsListTmpl + filmDetailTmpl + aboutAPITmpl))

// render executes a named page template, falling back to a bare 500 when
// execution fails mid-stream
func render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("%s Template %s failed: %v", logcolors.LogServer, name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
