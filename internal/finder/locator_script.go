package finder

// locatorScript returns the in-page routine that turns a concrete element
// into the shortest XPath that is unique (or near-unique) in the current
// document, plus descriptive metadata. The whole escalation runs in one
// evaluate round trip so the result stays consistent against concurrent
// DOM mutation.
func locatorScript() string {
	return `(el) => {
		function escapeXPathText(text) {
			if (!text) return '""';
			if (text.indexOf("'") !== -1) {
				return "concat('" + text.replace(/'/g, "', \"'\", '") + "')";
			}
			return "'" + text + "'";
		}

		function countXPath(xpath) {
			try {
				const result = document.evaluate(xpath, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
				return result.snapshotLength;
			} catch (e) {
				return 0;
			}
		}

		function robustXPath(element) {
			const tag = element.tagName.toLowerCase();
			const predicates = [];

			if (element.id && !element.id.match(/^[0-9]|:/)) {
				const xpath = '//' + tag + "[@id='" + element.id + "']";
				if (countXPath(xpath) === 1) return {xpath, count: 1};
				predicates.push("@id='" + element.id + "'");
			}

			const testId = element.getAttribute('data-testid');
			if (testId) {
				predicates.push("@data-testid='" + testId + "'");
			}

			const name = element.getAttribute('name');
			if (name) {
				predicates.push("@name='" + name + "'");
			}

			if (tag === 'input') {
				const type = element.getAttribute('type');
				if (type) predicates.push("@type='" + type + "'");

				const value = element.getAttribute('value');
				if (value && value.length < 20) predicates.push("@value='" + value + "'");

				const placeholder = element.getAttribute('placeholder');
				if (placeholder) predicates.push("@placeholder='" + placeholder + "'");
			}

			const textContent = element.innerText?.trim();
			if (textContent && textContent.length > 0 && textContent.length < 50) {
				if (['button', 'a', 'label', 'span', 'h1', 'h2', 'h3', 'h4', 'p', 'div', 'li'].includes(tag)) {
					const escaped = escapeXPathText(textContent);
					predicates.push('contains(normalize-space(.), ' + escaped + ')');
				}
			}

			if (element.className && typeof element.className === 'string') {
				const classes = element.className.split(' ').filter(c =>
					c && c.length > 2 &&
					!c.match(/^(btn|col-|row|container|wrapper|active|disabled|hidden|show|flex|grid|mt-|mb-|pt-|pb-|px-|py-|mx-|my-|[0-9])/)
				);
				classes.slice(0, 2).forEach(c => {
					predicates.push("contains(@class, '" + c + "')");
				});
			}

			const ariaLabel = element.getAttribute('aria-label');
			if (ariaLabel) predicates.push("@aria-label='" + ariaLabel + "'");

			for (const pred of predicates) {
				const xpath = '//' + tag + '[' + pred + ']';
				const count = countXPath(xpath);
				if (count === 1) return {xpath, count};
			}

			if (predicates.length > 1) {
				const combined = predicates.slice(0, 3).join(' and ');
				const xpath = '//' + tag + '[' + combined + ']';
				const count = countXPath(xpath);
				if (count === 1) return {xpath, count};

				// small ambiguous sets are still useful; report the true count
				if (count < 5) return {xpath, count};
			}

			let parent = element.parentElement;
			if (parent) {
				let parentXPath = '';
				if (parent.id) parentXPath = "//*[@id='" + parent.id + "']";
				else if (parent.getAttribute('data-testid')) parentXPath = "//*[@data-testid='" + parent.getAttribute('data-testid') + "']";
				else if (parent.className) {
					const pClass = parent.className.split(' ')[0];
					if (pClass) parentXPath = "//*[contains(@class, '" + pClass + "')]";
				}

				if (parentXPath) {
					const childPred = predicates.length > 0 ? '[' + predicates.slice(0, 2).join(' and ') + ']' : '';
					const xpath = parentXPath + '//' + tag + childPred;
					const count = countXPath(xpath);
					if (count === 1) return {xpath, count};
				}
			}

			// last resort: address the exact document position
			let baseXPath = '//' + tag;
			if (predicates.length > 0) {
				baseXPath += '[' + predicates.slice(0, 2).join(' and ') + ']';
			}

			const siblings = document.evaluate(baseXPath, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
			for (let i = 0; i < siblings.snapshotLength; i++) {
				if (siblings.snapshotItem(i) === element) {
					return {xpath: '(' + baseXPath + ')[' + (i + 1) + ']', count: 1};
				}
			}

			return {xpath: baseXPath, count: siblings.snapshotLength};
		}

		const located = robustXPath(el);

		const attrs = {};
		for (const attr of el.attributes) {
			attrs[attr.name] = attr.value;
		}

		let css = el.tagName.toLowerCase();
		if (el.id) css = '#' + el.id;
		else if (el.className && typeof el.className === 'string') {
			const firstClass = el.className.split(' ')[0];
			if (firstClass) css += '.' + firstClass;
		}

		return {
			xpath: located.xpath,
			matchCount: located.count,
			css: css,
			tag: el.tagName.toLowerCase(),
			text: el.innerText?.trim().substring(0, 200) || '',
			attributes: attrs
		};
	}`
}
