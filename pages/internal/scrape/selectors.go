package scrape

// Extraction scripts evaluated in the page. Each returns JSON.stringify of
// a plain object so the Go side can unmarshal without walking the DOM over
// CDP node by node. Selectors track LinkedIn's public company page markup.

const profileScript = `() => {
	const text = (sel) => {
		const el = document.querySelector(sel);
		return el ? el.textContent.trim() : "";
	};
	const attr = (sel, name) => {
		const el = document.querySelector(sel);
		return el ? (el.getAttribute(name) || "") : "";
	};
	return JSON.stringify({
		name:            text("h1.org-top-card-summary__title"),
		profile_picture: attr("img.org-top-card-primary-content__logo", "src"),
		description:     text("p.org-top-card-summary__tagline"),
		followers_text:  text(".org-top-card-summary-info-list__info-item"),
	});
}`

const aboutScript = `() => {
	const text = (sel) => {
		const el = document.querySelector(sel);
		return el ? el.textContent.trim() : "";
	};
	const attr = (sel, name) => {
		const el = document.querySelector(sel);
		return el ? (el.getAttribute(name) || "") : "";
	};
	return JSON.stringify({
		industry:     text("dd.org-about-company-module__industry"),
		company_size: text("dd.org-about-company-module__company-size-definition-text"),
		headquarters: text("dd.org-about-company-module__headquarters"),
		founded:      text("dd.org-about-company-module__founded"),
		website:      attr("a.org-about-us-company-module__website", "href"),
		specialties:  text("dd.org-about-company-module__specialities"),
	});
}`

// postsScript collects the cheap per-post fields in one pass. Engagement
// counters are fetched separately per item under their own budget.
const postsScript = `(max) => {
	const cards = Array.from(document.querySelectorAll(".feed-shared-update-v2")).slice(0, max);
	const posts = cards.map((card) => {
		const content = card.querySelector(".feed-shared-text");
		const date = card.querySelector(".feed-shared-actor__sub-description");
		const link = card.querySelector("a.app-aware-link[href*='/feed/update/']");
		const media = Array.from(card.querySelectorAll("img.feed-shared-image__image, video"))
			.map((el) => el.getAttribute("src") || el.getAttribute("poster") || "")
			.filter((u) => u !== "");
		return {
			content_html: content ? content.innerHTML : "",
			posted_date:  date ? date.textContent.trim() : "",
			post_url:     link ? (link.getAttribute("href") || "") : "",
			media_urls:   media,
		};
	});
	return JSON.stringify(posts);
}`

// detailScript reads the reaction / comment / share counters plus the
// visible comments for the post card at the given index.
const detailScript = `(idx) => {
	const card = document.querySelectorAll(".feed-shared-update-v2")[idx];
	if (!card) {
		return JSON.stringify({likes: "", comments: "", shares: "", items: []});
	}
	const text = (sel) => {
		const el = card.querySelector(sel);
		return el ? el.textContent.trim() : "";
	};
	const items = Array.from(card.querySelectorAll(".comments-comment-item")).map((c) => {
		const author = c.querySelector(".comments-post-meta__name-text");
		const link = c.querySelector("a.app-aware-link");
		const body = c.querySelector(".comments-comment-item__main-content");
		return {
			author_name: author ? author.textContent.trim() : "",
			author_url:  link ? (link.getAttribute("href") || "") : "",
			text:        body ? body.textContent.trim() : "",
		};
	});
	return JSON.stringify({
		likes:    text(".social-details-social-counts__reactions-count"),
		comments: text(".social-details-social-counts__comments"),
		shares:   text(".social-details-social-counts__shares"),
		items:    items,
	});
}`

const peopleScript = `(max) => {
	const cards = Array.from(document.querySelectorAll(".org-people-profile-card")).slice(0, max);
	const people = cards.map((card) => {
		const link = card.querySelector("a.app-aware-link");
		const img = card.querySelector("img");
		const title = card.querySelector(".org-people-profile-card__profile-title");
		return {
			name:            link ? link.textContent.trim() : "",
			profile_url:     link ? (link.getAttribute("href") || "") : "",
			profile_picture: img ? (img.getAttribute("src") || "") : "",
			title:           title ? title.textContent.trim() : "",
		};
	});
	return JSON.stringify(people);
}`

// clickScript clicks the first anchor whose href contains the fragment,
// returning whether anything was clicked.
const clickScript = `(fragment) => {
	const el = document.querySelector("a[href*='" + fragment + "']");
	if (el) {
		el.click();
		return true;
	}
	return false;
}`

const bodyTextLenScript = `() => document.body ? document.body.innerText.length : 0`
