package afisha

import (
	"testing"
)

const scheduleHTML = `
<html><body>
<div class="object s-votes-hover-area collapsed">
  <h3 class="usetags"><a href="https://www.afisha.ru/movie/212258/">Интерстеллар</a></h3>
  <table><tr>
    <td class="b-td-item">Кинотеатр 1</td>
    <td class="b-td-item">Кинотеатр 2</td>
    <td class="b-td-item">Кинотеатр 3</td>
  </tr></table>
</div>
<div class="object s-votes-hover-area collapsed">
  <h3 class="usetags"><a href="https://www.afisha.ru/movie/100500/">Левиафан</a></h3>
  <table><tr>
    <td class="b-td-item">Кинотеатр 1</td>
  </tr></table>
</div>
<div class="object other"><h3 class="usetags"><a href="/x/">Не фильм</a></h3></div>
</body></html>`

func TestParseListings(t *testing.T) {
	listings, err := ParseListings(scheduleHTML)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "Интерстеллар" {
		t.Errorf("Expected title 'Интерстеллар', got %q", first.Title)
	}
	if first.URL != "https://www.afisha.ru/movie/212258/" {
		t.Errorf("Unexpected URL: %q", first.URL)
	}
	if first.Count != 3 {
		t.Errorf("Expected venue count 3, got %d", first.Count)
	}

	if listings[1].Count != 1 {
		t.Errorf("Expected venue count 1, got %d", listings[1].Count)
	}
}

func TestParseListings_EmptyPage(t *testing.T) {
	listings, err := ParseListings("<html><body></body></html>")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("Expected no listings, got %d", len(listings))
	}
}

const citiesHTML = `
<html><body>
<span class="js-geographyplaceid dd-link bold" data-href="https://www.afisha.ru/msk/">Москва</span>
<span class="js-geographyplaceid dd-link " data-href="https://www.afisha.ru/spb/">Санкт-Петербург</span>
<span class="js-geographyplaceid dd-link " data-href="https://www.afisha.ru/">Без id</span>
<span class="js-geographyplaceid dd-link " data-href="https://www.afisha.ru/nsk/"></span>
</body></html>`

func TestParseCities(t *testing.T) {
	cities, err := ParseCities(citiesHTML)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(cities) != 2 {
		t.Fatalf("Expected 2 cities, got %d: %v", len(cities), cities)
	}
	if cities["msk"] != "Москва" {
		t.Errorf("Expected msk -> Москва, got %q", cities["msk"])
	}
	if cities["spb"] != "Санкт-Петербург" {
		t.Errorf("Expected spb -> Санкт-Петербург, got %q", cities["spb"])
	}
}
