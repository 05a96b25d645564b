// Package resolver turns (intent, slots, catalog) into a user-facing message
// and an explicit list of slot updates. Each turn is resolved independently;
// there is no hidden state between calls. "No data found" is a normal
// conversational outcome, never an error; only catalog access failures
// propagate.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"elyubot/internal/catalog"
	"elyubot/internal/intent"
	"elyubot/internal/lexicon"
	"elyubot/internal/session"
)

// Request is one turn's input: the classified intent, the slots extracted
// this turn, the remembered slots, and the raw utterance (needed for the
// literal-town and "where" checks). Confidence is the external NLU score,
// negative when no external source exists.
type Request struct {
	Intent      intent.Intent
	Towns       []string
	ProductHint string
	Slots       session.Slots
	Utterance   string
	Confidence  float64
}

// Reply is one turn's output. SlotOps is the full, explicit set of updates;
// an empty list means the turn left slot memory untouched.
type Reply struct {
	Text    string
	SlotOps []session.Op
}

// Resolver dispatches per-intent handlers over a read-only catalog.
type Resolver struct {
	provider catalog.Provider
	norm     *lexicon.Normalizer
	handlers map[intent.Intent]func(Request) (Reply, error)
}

// recommendationCount is how many products a recommendation turn offers.
const recommendationCount = 3

// veryLowConfidence branches the fallback message: below it the reply is a
// structured menu of example queries, above it a rephrase request.
const veryLowConfidence = 0.15

// popularKeywords is the fixed allow-list used to prefer products in
// recommendations. Matched case-insensitively against name and description.
var popularKeywords = []string{"popular", "famous", "best", "renowned", "well-loved"}

// New builds a resolver over a catalog provider and normalizer.
func New(provider catalog.Provider, norm *lexicon.Normalizer) *Resolver {
	r := &Resolver{provider: provider, norm: norm}
	r.handlers = map[intent.Intent]func(Request) (Reply, error){
		intent.Greeting:              r.resolveGreeting,
		intent.StoreInfo:             r.resolveStoreInfo,
		intent.ProductInquiry:        r.resolveProductInquiry,
		intent.LocationInfo:          r.resolveLocationInfo,
		intent.SignatureProductQuery: r.resolveSignature,
		intent.RecommendationQuery:   r.resolveRecommendation,
		intent.General:               r.resolveGeneral,
		intent.Fallback:              r.resolveFallback,
	}
	return r
}

// Resolve produces the reply for one turn.
func (r *Resolver) Resolve(req Request) (Reply, error) {
	h, ok := r.handlers[req.Intent]
	if !ok {
		h = r.resolveFallback
	}
	return h(req)
}

/* ---------------------------- Intent handlers ---------------------------- */

func (r *Resolver) resolveGreeting(Request) (Reply, error) {
	return Reply{
		Text: "Hi, I'm ElyuBot! Ask me about local products, stores, or the municipalities of La Union.",
	}, nil
}

func (r *Resolver) resolveStoreInfo(req Request) (Reply, error) {
	stores, err := r.provider.Stores()
	if err != nil {
		return Reply{}, fmt.Errorf("load stores: %w", err)
	}

	name := strings.TrimSpace(req.Slots.StoreName)
	lower := strings.ToLower(req.Utterance)

	var found *catalog.Store
	for i, s := range stores {
		if strings.Contains(lower, strings.ToLower(s.Name)) {
			found = &stores[i]
			break
		}
	}
	if found == nil && name != "" {
		for i, s := range stores {
			if strings.EqualFold(s.Name, name) {
				found = &stores[i]
				break
			}
		}
	}
	if found == nil {
		return Reply{Text: "Which store are you curious about? Tell me its name and I'll pull up the details."}, nil
	}

	text := fmt.Sprintf("%s is in %s, open %s.", found.Name, found.Town, orDefault(found.OperatingHours, "daily"))
	if found.Phone != "" {
		text += fmt.Sprintf(" You can reach them at %s.", found.Phone)
	}
	return Reply{
		Text: text,
		SlotOps: []session.Op{
			session.Set(session.SlotStoreName, found.Name),
			session.Clear(session.SlotProductName),
		},
	}, nil
}

func (r *Resolver) resolveProductInquiry(req Request) (Reply, error) {
	candidate := strings.TrimSpace(req.ProductHint)
	if candidate == "" {
		candidate = strings.TrimSpace(req.Slots.ProductName)
	}
	if candidate != "" {
		return r.resolveProductByName(req, candidate)
	}

	town, _ := r.pickTown(req)
	if town == "" {
		return Reply{Text: "I can help with that! Which municipality are you curious about, or which product are you looking for?"}, nil
	}
	return r.resolveProductsByTown(req, town)
}

// resolveProductByName handles product-name lookups. The match is a
// case-insensitive substring test against both name and description, so
// "towel" finds "Inabel Towel". A bound town narrows the result only when
// the town is literally present in this turn's utterance; a stale town slot
// must not silently filter an unrelated product query.
func (r *Resolver) resolveProductByName(req Request, candidate string) (Reply, error) {
	products, err := r.provider.Products()
	if err != nil {
		return Reply{}, fmt.Errorf("load products: %w", err)
	}

	name := r.norm.NormalizeProduct(candidate)
	needle := strings.ToLower(name)

	var matches []catalog.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matches = append(matches, p)
		}
	}

	town, literal := r.pickTown(req)
	if town != "" && literal {
		var scoped []catalog.Product
		for _, p := range matches {
			if strings.EqualFold(r.norm.NormalizeTown(p.Town), town) {
				scoped = append(scoped, p)
			}
		}
		matches = scoped
	}

	if len(matches) == 0 {
		examples := productExamples(products, 2)
		text := fmt.Sprintf("I couldn't find %s in my La Union data. It might go by a different name", name)
		if len(examples) > 0 {
			text += fmt.Sprintf(" — I do have things like %s", strings.Join(examples, " and "))
		}
		text += ". Any other products you're curious about?"
		return Reply{Text: text}, nil
	}

	switch productMode(req.Utterance) {
	case modePrice:
		return r.priceReply(name, matches)
	case modeAvailability:
		return r.availabilityReply(name, matches)
	case modeDetails:
		return r.detailsReply(name, matches)
	}

	return r.storeReply(name, matches)
}

// storeReply chains product matches into their stores. With no linked store
// it degrades to listing towns with a local-markets pointer rather than
// failing.
func (r *Resolver) storeReply(name string, matches []catalog.Product) (Reply, error) {
	stores, err := r.provider.Stores()
	if err != nil {
		return Reply{}, fmt.Errorf("load stores: %w", err)
	}
	byID := make(map[string]catalog.Store, len(stores))
	for _, s := range stores {
		byID[s.StoreID] = s
	}

	storeNames := newOrderedSet()
	towns := newOrderedSet()
	for _, p := range matches {
		towns.add(r.norm.NormalizeTown(p.Town))
		if s, ok := byID[p.StoreID]; ok {
			storeNames.add(s.Name)
		} else if p.StoreName != "" {
			storeNames.add(p.StoreName)
		}
	}

	ops := []session.Op{
		session.Set(session.SlotProductName, name),
		session.Clear(session.SlotStoreName),
	}
	if towns.len() == 1 {
		ops = append(ops, session.Set(session.SlotTown, towns.values()[0]))
	}

	if storeNames.len() == 0 {
		text := fmt.Sprintf("You can find %s in %s. I don't have a specific store on file — try the local markets there!",
			name, joinAnd(towns.values()))
		return Reply{Text: text, SlotOps: ops}, nil
	}

	if storeNames.len() == 1 {
		// A single concrete store pins the store slot instead of clearing it.
		ops[1] = session.Set(session.SlotStoreName, storeNames.values()[0])
		text := fmt.Sprintf("%s is sold at %s in %s.", name, storeNames.values()[0], joinAnd(towns.values()))
		return Reply{Text: text, SlotOps: ops}, nil
	}

	text := fmt.Sprintf("%s is available at %s, across %s.",
		name, joinAnd(storeNames.values()), joinAnd(towns.values()))
	return Reply{Text: text, SlotOps: ops}, nil
}

func (r *Resolver) priceReply(name string, matches []catalog.Product) (Reply, error) {
	ops := []session.Op{
		session.Set(session.SlotProductName, name),
		session.Clear(session.SlotStoreName),
	}
	if len(matches) == 1 {
		p := matches[0]
		return Reply{
			Text: fmt.Sprintf("In %s, %s typically costs %s. Prices may vary by season and vendor.",
				r.norm.NormalizeTown(p.Town), name, orDefault(p.PriceRange, "a varying amount")),
			SlotOps: append(ops, session.Set(session.SlotTown, r.norm.NormalizeTown(p.Town))),
		}, nil
	}
	parts := make([]string, 0, len(matches))
	for _, p := range matches {
		parts = append(parts, fmt.Sprintf("in %s: %s", r.norm.NormalizeTown(p.Town), orDefault(p.PriceRange, "price varies")))
	}
	return Reply{
		Text:    fmt.Sprintf("The price of %s varies by location — %s. Prices may vary by season and vendor.", name, strings.Join(parts, "; ")),
		SlotOps: ops,
	}, nil
}

func (r *Resolver) availabilityReply(name string, matches []catalog.Product) (Reply, error) {
	parts := make([]string, 0, len(matches))
	for _, p := range matches {
		part := fmt.Sprintf("in %s: %s", r.norm.NormalizeTown(p.Town), orDefault(p.Availability, "available year-round"))
		if p.PeakSeason != "" {
			part += fmt.Sprintf(" (peak season %s)", p.PeakSeason)
		}
		parts = append(parts, part)
	}
	return Reply{
		Text: fmt.Sprintf("%s availability — %s.", name, strings.Join(parts, "; ")),
		SlotOps: []session.Op{
			session.Set(session.SlotProductName, name),
			session.Clear(session.SlotStoreName),
		},
	}, nil
}

func (r *Resolver) detailsReply(name string, matches []catalog.Product) (Reply, error) {
	var description, making, significance string
	towns := newOrderedSet()
	for _, p := range matches {
		towns.add(r.norm.NormalizeTown(p.Town))
		if description == "" {
			description = p.Description
		}
		if making == "" {
			making = p.MakingProcess
		}
		if significance == "" {
			significance = p.CulturalSignificance
		}
	}

	parts := []string{fmt.Sprintf("About %s:", name)}
	if description != "" {
		parts = append(parts, description)
	}
	if making != "" {
		parts = append(parts, "Making process: "+making)
	}
	if significance != "" {
		parts = append(parts, "Cultural significance: "+significance)
	}
	parts = append(parts, "Found in: "+joinAnd(towns.values()))

	return Reply{
		Text: strings.Join(parts, " "),
		SlotOps: []session.Op{
			session.Set(session.SlotProductName, name),
			session.Clear(session.SlotStoreName),
		},
	}, nil
}

// resolveProductsByTown lists a town's products. The umbrella pseudo-town
// means the whole catalog.
func (r *Resolver) resolveProductsByTown(req Request, town string) (Reply, error) {
	products, err := r.provider.Products()
	if err != nil {
		return Reply{}, fmt.Errorf("load products: %w", err)
	}

	town = r.norm.NormalizeTown(town)
	var scoped []catalog.Product
	if town == lexicon.Umbrella {
		scoped = products
	} else {
		for _, p := range products {
			if strings.EqualFold(r.norm.NormalizeTown(p.Town), town) {
				scoped = append(scoped, p)
			}
		}
	}

	if len(scoped) == 0 {
		text, err := r.noProductsText(town)
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text: text,
			SlotOps: []session.Op{
				session.Set(session.SlotTown, town),
				session.Clear(session.SlotProductName),
				session.Clear(session.SlotStoreName),
			},
		}, nil
	}

	items := make([]string, 0, len(scoped))
	for i, p := range scoped {
		if i == 10 {
			break
		}
		if p.Category != "" {
			items = append(items, fmt.Sprintf("%s (%s)", p.Name, p.Category))
		} else {
			items = append(items, p.Name)
		}
	}
	var text string
	if town == lexicon.Umbrella {
		text = fmt.Sprintf("All over La Union you can find: %s.", strings.Join(items, ", "))
	} else {
		text = fmt.Sprintf("In %s, you can find: %s. Want to know more about any of these?", town, strings.Join(items, ", "))
	}
	return Reply{
		Text: text,
		SlotOps: []session.Op{
			session.Set(session.SlotTown, town),
			session.Clear(session.SlotProductName),
			session.Clear(session.SlotStoreName),
		},
	}, nil
}

func (r *Resolver) resolveLocationInfo(req Request) (Reply, error) {
	town, _ := r.pickTown(req)
	if town == "" {
		return Reply{Text: "Please tell me which municipality you'd like to know about."}, nil
	}
	town = r.norm.NormalizeTown(town)

	munis, err := r.provider.Municipalities()
	if err != nil {
		return Reply{}, fmt.Errorf("load municipalities: %w", err)
	}
	for _, m := range munis {
		if strings.EqualFold(m.Name, town) {
			return Reply{
				Text:    fmt.Sprintf("%s: %s", m.Name, orDefault(m.Description, "a municipality of La Union")),
				SlotOps: []session.Op{session.Set(session.SlotTown, m.Name)},
			}, nil
		}
	}

	text, err := r.noProductsText(town)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}

// resolveSignature answers "what is X known for" by exact town match against
// the signature-product table. A "where" in the utterance chains each
// signature product into store resolution.
func (r *Resolver) resolveSignature(req Request) (Reply, error) {
	town, _ := r.pickTown(req)
	if town == "" {
		return Reply{Text: "Which town's specialties are you wondering about?"}, nil
	}
	town = r.norm.NormalizeTown(town)

	sigs, err := r.provider.SignatureProducts()
	if err != nil {
		return Reply{}, fmt.Errorf("load signature products: %w", err)
	}
	var names []string
	for _, sp := range sigs {
		if strings.EqualFold(sp.Town, town) {
			names = append(names, sp.ProductName)
		}
	}

	if len(names) == 0 {
		text, err := r.noProductsText(town)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: text}, nil
	}

	ops := []session.Op{
		session.Set(session.SlotTown, town),
		session.Clear(session.SlotProductName),
		session.Clear(session.SlotStoreName),
	}

	if strings.Contains(strings.ToLower(req.Utterance), "where") {
		parts := make([]string, 0, len(names))
		for _, n := range names {
			located, err := r.locateProduct(n)
			if err != nil {
				return Reply{}, err
			}
			parts = append(parts, located)
		}
		return Reply{
			Text:    fmt.Sprintf("%s is known for %s. %s", town, joinAnd(names), strings.Join(parts, " ")),
			SlotOps: ops,
		}, nil
	}

	return Reply{
		Text:    fmt.Sprintf("%s is known for %s.", town, joinAnd(names)),
		SlotOps: ops,
	}, nil
}

// locateProduct finds a concrete store for one signature product.
func (r *Resolver) locateProduct(name string) (string, error) {
	products, err := r.provider.Products()
	if err != nil {
		return "", fmt.Errorf("load products: %w", err)
	}
	stores, err := r.provider.Stores()
	if err != nil {
		return "", fmt.Errorf("load stores: %w", err)
	}
	byID := make(map[string]catalog.Store, len(stores))
	for _, s := range stores {
		byID[s.StoreID] = s
	}

	needle := strings.ToLower(r.norm.NormalizeProduct(name))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if s, ok := byID[p.StoreID]; ok {
			return fmt.Sprintf("You can get %s at %s in %s.", p.Name, s.Name, s.Town), nil
		}
	}
	return fmt.Sprintf("For %s, try the local markets.", name), nil
}

// resolveRecommendation prefers products matching the popular-keyword
// allow-list, padded with the first catalog products in original order. The
// padding is deliberately order-of-catalog, not ranked.
func (r *Resolver) resolveRecommendation(req Request) (Reply, error) {
	products, err := r.provider.Products()
	if err != nil {
		return Reply{}, fmt.Errorf("load products: %w", err)
	}

	town, _ := r.pickTown(req)
	scoped := products
	var ops []session.Op
	if town != "" {
		town = r.norm.NormalizeTown(town)
		scoped = nil
		for _, p := range products {
			if strings.EqualFold(r.norm.NormalizeTown(p.Town), town) {
				scoped = append(scoped, p)
			}
		}
		ops = append(ops, session.Set(session.SlotTown, town))
	}

	if len(scoped) == 0 {
		text, err := r.noProductsText(town)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: text, SlotOps: ops}, nil
	}

	picked := newOrderedSet()
	for _, p := range scoped {
		if picked.len() == recommendationCount {
			break
		}
		if isPopular(p) {
			picked.add(p.Name)
		}
	}
	for _, p := range scoped {
		if picked.len() == recommendationCount {
			break
		}
		picked.add(p.Name)
	}

	where := "La Union"
	if town != "" && town != lexicon.Umbrella {
		where = town
	}
	return Reply{
		Text:    fmt.Sprintf("From %s, you might like %s.", where, joinAnd(picked.values())),
		SlotOps: ops,
	}, nil
}

func (r *Resolver) resolveGeneral(Request) (Reply, error) {
	return Reply{
		Text: "I can tell you about local products, stores, and the municipalities of La Union. What would you like to know?",
	}, nil
}

func (r *Resolver) resolveFallback(req Request) (Reply, error) {
	if req.Confidence >= 0 && req.Confidence < veryLowConfidence {
		return Reply{
			Text: "I'm not sure I follow. Here are some things you can ask me:\n" +
				"1. \"What can I buy in San Fernando?\"\n" +
				"2. \"Where is Inabel fabric sold?\"\n" +
				"3. \"What is Agoo known for?\"",
		}, nil
	}
	return Reply{Text: "Sorry, I didn't quite get that — could you rephrase it?"}, nil
}

/* ------------------------------- Helpers -------------------------------- */

// pickTown chooses this turn's town. Towns extracted from the utterance are
// by definition literally present; a remembered slot counts as literal only
// if its name appears in the raw utterance text.
func (r *Resolver) pickTown(req Request) (town string, literal bool) {
	if len(req.Towns) > 0 {
		return r.norm.NormalizeTown(req.Towns[0]), true
	}
	if req.Slots.Town != "" {
		t := r.norm.NormalizeTown(req.Slots.Town)
		return t, strings.Contains(strings.ToLower(req.Utterance), strings.ToLower(t))
	}
	return "", false
}

// noProductsText is the single "no results for this town" message, with the
// shared nearby-towns suggestion: distinct catalog towns minus the requested
// one, sorted lexicographically, first two surfaced.
func (r *Resolver) noProductsText(town string) (string, error) {
	products, err := r.provider.Products()
	if err != nil {
		return "", fmt.Errorf("load products: %w", err)
	}

	nearby := newOrderedSet()
	for _, p := range products {
		t := r.norm.NormalizeTown(p.Town)
		if !strings.EqualFold(t, town) {
			nearby.add(t)
		}
	}
	suggestions := nearby.sorted()
	if len(suggestions) > 2 {
		suggestions = suggestions[:2]
	}

	if len(suggestions) == 0 {
		return fmt.Sprintf("I don't have products listed for %s yet.", town), nil
	}
	return fmt.Sprintf("I don't have products listed for %s yet, but nearby %s have some great finds — want to look there?",
		town, joinAnd(suggestions)), nil
}

type productModeKind int

const (
	modeStores productModeKind = iota
	modePrice
	modeAvailability
	modeDetails
)

// productMode picks the product-inquiry flavor from secondary keywords.
func productMode(utterance string) productModeKind {
	lower := strings.ToLower(utterance)
	switch {
	case containsAny(lower, "price", "cost", "how much", "magkano"):
		return modePrice
	case containsAny(lower, "available", "availability", "in stock", "season"):
		return modeAvailability
	case containsAny(lower, "made", "making", "process", "significance"):
		return modeDetails
	default:
		return modeStores
	}
}

func isPopular(p catalog.Product) bool {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, kw := range popularKeywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func productExamples(products []catalog.Product, n int) []string {
	names := newOrderedSet()
	for _, p := range products {
		if names.len() == n {
			break
		}
		names.add(p.Name)
	}
	return names.values()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// orderedSet deduplicates while preserving insertion order. Duplicate slot
// values from upstream tagging must never be double-processed.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (o *orderedSet) add(v string) {
	key := strings.ToLower(v)
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	o.items = append(o.items, v)
}

func (o *orderedSet) len() int         { return len(o.items) }
func (o *orderedSet) values() []string { return o.items }

func (o *orderedSet) sorted() []string {
	out := append([]string(nil), o.items...)
	sort.Strings(out)
	return out
}
